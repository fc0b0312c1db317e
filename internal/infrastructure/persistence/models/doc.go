// Package models contains the GORM persistence models and their mappings to
// and from the domain aggregates. Domain types stay free of ORM tags; all
// schema concerns live here.
package models
