package models

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

type ProductDocument struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type Product struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	CategoryID       string            `json:"category_id"`
	CategoryName     string            `json:"category_name,omitempty"`
	Description      string            `json:"description"`
	Benefits         string            `json:"benefits,omitempty"`
	KeyIngredients   string            `json:"key_ingredients,omitempty"`
	PackagingOptions string            `json:"packaging_options,omitempty"`
	Images           []string          `json:"images"`
	Documents        []ProductDocument `json:"documents"`
	Featured         bool              `json:"featured"`
	CreatedAt        Timestamp         `json:"created_at"`
	UpdatedAt        Timestamp         `json:"updated_at"`
}

// CoverImage is the first product image, or empty.
func (p Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt"`
	CoverImage      string    `json:"cover_image,omitempty"`
	Category        string    `json:"category"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	ReadTime        int       `json:"read_time"`
	Published       bool      `json:"published"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt Timestamp `json:"created_at"`
}

type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	ReviewText   string    `json:"review_text"`
	Rating       int       `json:"rating"`
	Position     string    `json:"position,omitempty"`
	Company      string    `json:"company,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

type Service struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	ImageURL         string    `json:"image_url,omitempty"`
	Features         []string  `json:"features"`
	Benefits         string    `json:"benefits,omitempty"`
	ProcessSteps     string    `json:"process_steps,omitempty"`
	Featured         bool      `json:"featured"`
	Order            int       `json:"order"`
	CreatedAt        Timestamp `json:"created_at"`
}

type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category,omitempty"`
	Featured    bool      `json:"featured"`
	Order       int       `json:"order"`
	CreatedAt   Timestamp `json:"created_at"`
}
