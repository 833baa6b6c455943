package service

// SectionPayload is an incoming content unit. Its position in the payload
// list is its order.
type SectionPayload struct {
	Name    string
	Content string
}

// SchemaContext identifies the article version and language a schema
// operation runs against.
type SchemaContext struct {
	ArticleVersionCode string
	LanguageCode       string
}

// SectionProjection is the contractually exposed shape of a linked section.
type SectionProjection struct {
	Code    string
	Name    string
	Content string
	Order   int
}

// SchemaProjection is the response shape of a schema.
type SchemaProjection struct {
	Code              string
	ParentCode        *string
	Sections          []SectionProjection
	ShouldBeRenovated bool
}

// VersionProjection is the response shape of an article version.
type VersionProjection struct {
	Code       string
	Version    int
	SchemaCode string
	Actual     bool
	Archived   bool
	Sections   []SectionProjection
}

// ArticleLanguageProjection is the response shape of one language of an
// article.
type ArticleLanguageProjection struct {
	Code          string
	Name          string
	LanguageCode  string
	ActualVersion *VersionProjection
}

// ArticleProjection is the response shape of an article, partitioned into the
// requested language and the remaining ones.
type ArticleProjection struct {
	Code                string
	Type                string
	Language            ArticleLanguageProjection
	AdditionalLanguages []ArticleLanguageProjection
}
