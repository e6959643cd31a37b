// Package feed defines the records roster reads from the remote collection
// store: employees, their posts and each post's comments.
package feed

import "fmt"

// Company is the employer block embedded in an Employee.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs,omitempty"`
}

// Employee is a selectable owner of posts.
type Employee struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Company  Company `json:"company"`
}

// Byline is the author line shown under a post.
func (e Employee) Byline() string {
	return fmt.Sprintf("Author: %s with %s", e.Name, e.Company.Name)
}

// Post belongs to exactly one Employee through UserID.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment belongs to exactly one Post.
type Comment struct {
	ID     int    `json:"id,omitempty"`
	PostID int    `json:"postId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Signature is the "From:" line shown under a comment.
func (c Comment) Signature() string {
	return "From: " + c.Email
}
