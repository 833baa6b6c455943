package service

import "errors"

var (
	// ErrAlreadyActualSchema is returned when renovation is requested for a
	// draft that is already anchored to the actual version.
	ErrAlreadyActualSchema = errors.New("schema is already actual")
	// ErrAlreadyApprovedSchema is returned when approval is requested for a
	// root schema or a draft whose parent is not the version being superseded.
	ErrAlreadyApprovedSchema = errors.New("invalid schema to approve")
	// ErrDuplicateLanguage is returned when adding a language that already
	// exists on an article.
	ErrDuplicateLanguage = errors.New("article language already exists")
	// ErrNameNotUnique is returned when an article name collides within a
	// language.
	ErrNameNotUnique = errors.New("article name is already in use")
	// ErrLanguageShouldExist indicates a loaded article aggregate is missing
	// the requested language. This is an upstream query bug, not a normal
	// runtime condition.
	ErrLanguageShouldExist = errors.New("article language should exist")
	// ErrVersionShouldExist indicates a loaded article language is missing
	// its actual version.
	ErrVersionShouldExist = errors.New("article version should exist")
)
