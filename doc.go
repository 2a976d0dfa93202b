// Package main provides the entry point for pluserman, a small service that
// keeps users, groups and their memberships in a relational store.
// Users and groups are created and deleted over a JSON REST API served by
// Fiber; a group's membership can be replaced as a whole in one transaction.
// Persistence goes through gorm and works against SQLite, MySQL or PostgreSQL.
package main
