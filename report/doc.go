// Package report assembles a contestant's score into a serializable report
// and renders it as JSON or XML for the persistence and notification
// consumers.
package report
