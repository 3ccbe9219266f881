package service

import "time"

// Child collection inputs as submitted by the admin editor. Wire names are
// camelCase; the struct tags here and on the db models are the only place
// the external/internal field mapping is declared.
//
// OrderIndex is optional: when absent the item's position in the submitted
// array is used.

// GalleryItemInput describes one gallery entry.
type GalleryItemInput struct {
	ImageURL   string `json:"imageUrl"`
	Caption    string `json:"caption"`
	AltText    string `json:"altText"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OrderIndex *int   `json:"orderIndex"`
}

// DownloadItemInput describes one downloadable attachment.
type DownloadItemInput struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	OrderIndex *int   `json:"orderIndex"`
}

// FAQItemInput describes one FAQ entry.
type FAQItemInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	OrderIndex *int   `json:"orderIndex"`
}

// FeatureInput describes one feature highlight.
type FeatureInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	OrderIndex  *int   `json:"orderIndex"`
}

// PackageInput describes one service package.
type PackageInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	BillingNote string `json:"billingNote"`
	Highlights  string `json:"highlights"`
	OrderIndex  *int   `json:"orderIndex"`
}

// ProblemItemInput describes one pain-point entry.
type ProblemItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"orderIndex"`
}

// SolutionItemInput describes one solution entry.
type SolutionItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"orderIndex"`
}

// TestimonialInput describes one customer quote.
type TestimonialInput struct {
	Author     string `json:"author"`
	Role       string `json:"role"`
	Company    string `json:"company"`
	Quote      string `json:"quote"`
	AvatarURL  string `json:"avatarUrl"`
	OrderIndex *int   `json:"orderIndex"`
}

// RelatedLinkInput references another content entity by type and slug.
// The slug is resolved to an id at sync time.
type RelatedLinkInput struct {
	Type       string `json:"type"`
	Slug       string `json:"slug"`
	OrderIndex *int   `json:"orderIndex"`
}

// RelationInputs carries every child collection a save request may submit.
// A nil slice means the caller omitted that collection key and the stored
// rows are left untouched; a present (possibly empty) slice replaces them.
type RelationInputs struct {
	Gallery      *[]GalleryItemInput  `json:"gallery"`
	Downloads    *[]DownloadItemInput `json:"downloads"`
	FAQs         *[]FAQItemInput      `json:"faqs"`
	Features     *[]FeatureInput      `json:"features"`
	Packages     *[]PackageInput      `json:"packages"`
	Problems     *[]ProblemItemInput  `json:"problems"`
	Solutions    *[]SolutionItemInput `json:"solutions"`
	Testimonials *[]TestimonialInput  `json:"testimonials"`
	Related      *[]RelatedLinkInput  `json:"related"`
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"coverUrl"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	RelationInputs
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"coverUrl"`
	ClientName  string     `json:"clientName"`
	ProjectURL  string     `json:"projectUrl"`
	Year        int        `json:"year"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	RelationInputs
}

// ServiceInput represents fields accepted when creating or updating a service.
type ServiceInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	IconURL     string     `json:"iconUrl"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	RelationInputs
}
