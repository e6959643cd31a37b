package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconEmployee = "\uf007"     // nf-fa-user
	IconPost     = "\uf15c"     // nf-fa-file_text
	IconComments = "\uf086"     // nf-fa-comments
	IconMail     = "\uf0e0"     // nf-fa-envelope
	IconWarning  = "\uf071"     // nf-fa-warning
	IconError    = "\uf057"     // nf-fa-times_circle
	IconCheck    = "\uf00c"     // nf-fa-check
	IconInfo     = "\U000F02FC" // nf-md-information
)
