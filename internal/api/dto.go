package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emrgen/article/internal/service"
)

type sectionPayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func toPayloads(sections []sectionPayload) []service.SectionPayload {
	payloads := make([]service.SectionPayload, 0, len(sections))
	for _, section := range sections {
		payloads = append(payloads, service.SectionPayload{
			Name:    section.Name,
			Content: section.Content,
		})
	}
	return payloads
}

func (s sectionPayload) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&s.Content, validation.Required),
	)
}

type createArticleRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	LanguageCode string           `json:"languageCode"`
	CategoryCode *string          `json:"categoryCode,omitempty"`
	Sections     []sectionPayload `json:"sections"`
}

func (r createArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Type, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.LanguageCode, validation.Required),
		validation.Field(&r.Sections),
	)
}

type addLanguageRequest struct {
	Name         string           `json:"name"`
	LanguageCode string           `json:"languageCode"`
	Sections     []sectionPayload `json:"sections"`
}

func (r addLanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.LanguageCode, validation.Required),
		validation.Field(&r.Sections),
	)
}

type createLanguageRequest struct {
	Name string `json:"name"`
}

func (r createLanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 64)),
	)
}

type createCategoryRequest struct {
	Name       string  `json:"name"`
	ParentCode *string `json:"parentCode,omitempty"`
}

func (r createCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
	)
}

// schemaScope identifies the article version and language a draft operation
// runs against.
type schemaScope struct {
	ArticleVersionCode string `json:"articleVersionCode"`
	LanguageCode       string `json:"languageCode"`
}

func (s schemaScope) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ArticleVersionCode, validation.Required),
		validation.Field(&s.LanguageCode, validation.Required),
	)
}

func (s schemaScope) context() service.SchemaContext {
	return service.SchemaContext{
		ArticleVersionCode: s.ArticleVersionCode,
		LanguageCode:       s.LanguageCode,
	}
}

type createDraftRequest struct {
	schemaScope
	Sections []sectionPayload `json:"sections"`
}

func (r createDraftRequest) Validate() error {
	if err := r.schemaScope.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sections, validation.Required),
	)
}

type updateDraftRequest struct {
	schemaScope
	Sections []sectionPayload `json:"sections"`
}

func (r updateDraftRequest) Validate() error {
	return r.schemaScope.Validate()
}
