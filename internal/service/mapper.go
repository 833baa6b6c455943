package service

import (
	"github.com/emrgen/article/internal/model"
)

// The mappers are pure projections over loaded aggregates. They decide which
// fields are contractually exposed; they never touch the store.

func mapSections(links []model.SchemaSection) []SectionProjection {
	sections := make([]SectionProjection, 0, len(links))
	for _, link := range links {
		sections = append(sections, SectionProjection{
			Code:    link.SectionCode,
			Name:    link.Section.Name,
			Content: link.Section.Content,
			Order:   link.Order,
		})
	}
	return sections
}

func mapSchema(schema *model.Schema, shouldBeRenovated bool) *SchemaProjection {
	return &SchemaProjection{
		Code:              schema.Code,
		ParentCode:        schema.ParentCode,
		Sections:          mapSections(schema.Sections),
		ShouldBeRenovated: shouldBeRenovated,
	}
}

func mapVersion(version *model.ArticleVersion) *VersionProjection {
	projection := &VersionProjection{
		Code:       version.Code,
		Version:    version.Version,
		SchemaCode: version.SchemaCode,
		Actual:     version.IsActual(),
		Archived:   version.Archived,
	}
	if version.Schema != nil {
		projection.Sections = mapSections(version.Schema.Sections)
	}
	return projection
}

func mapArticleLanguage(lang *model.ArticleLanguage) (*ArticleLanguageProjection, error) {
	projection := &ArticleLanguageProjection{
		Code:         lang.Code,
		Name:         lang.Name,
		LanguageCode: lang.LanguageCode,
	}

	for i := range lang.Versions {
		if lang.Versions[i].IsActual() {
			projection.ActualVersion = mapVersion(&lang.Versions[i])
			break
		}
	}
	if projection.ActualVersion == nil {
		return nil, ErrVersionShouldExist
	}

	return projection, nil
}

// mapArticle partitions the requested language from the additional ones. The
// requested language and its actual version must be present on the loaded
// aggregate; their absence indicates a broken upstream query.
func mapArticle(article *model.Article, languageCode string) (*ArticleProjection, error) {
	projection := &ArticleProjection{
		Code: article.Code,
		Type: article.Type,
	}

	var requested *model.ArticleLanguage
	for i := range article.Languages {
		lang := &article.Languages[i]
		if lang.LanguageCode == languageCode {
			requested = lang
			continue
		}
		additional, err := mapArticleLanguage(lang)
		if err != nil {
			return nil, err
		}
		projection.AdditionalLanguages = append(projection.AdditionalLanguages, *additional)
	}

	if requested == nil {
		return nil, ErrLanguageShouldExist
	}

	language, err := mapArticleLanguage(requested)
	if err != nil {
		return nil, err
	}
	projection.Language = *language

	return projection, nil
}
