package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"polyglot-blog-be/content"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

type User struct {
	ID        string         `gorm:"primaryKey;type:varchar(25)" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"type:varchar(20);default:'editor'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// BeforeCreate hook to generate CUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = cuid.New()
	}
	return nil
}

type Category struct {
	ID        string         `gorm:"primaryKey;type:varchar(25)" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	NameEn    string         `gorm:"not null" json:"name_en"`
	NameEs    string         `json:"name_es"`
	NameFr    string         `json:"name_fr"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate CUID
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = cuid.New()
	}
	return nil
}

// LocalizedName returns the category name for l, falling back to the
// default locale.
func (c *Category) LocalizedName(l content.Locale) string {
	_, name := content.Pick(l, func(l content.Locale) string {
		switch l {
		case content.Spanish:
			return c.NameEs
		case content.French:
			return c.NameFr
		default:
			return c.NameEn
		}
	})
	return name
}

// Post keeps one independent translation per locale. Content fields hold
// raw HTML exactly as the editor or the generation pipeline produced it;
// they are sanitized on every render and never on write.
type Post struct {
	ID          string         `gorm:"primaryKey;type:varchar(25)" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	TitleEn     string         `gorm:"not null" json:"title_en"`
	TitleEs     string         `json:"title_es"`
	TitleFr     string         `json:"title_fr"`
	ContentEn   string         `gorm:"type:text" json:"content_en"`
	ContentEs   string         `gorm:"type:text" json:"content_es"`
	ContentFr   string         `gorm:"type:text" json:"content_fr"`
	Published   bool           `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time     `json:"published_at"`
	ImageURL    string         `json:"image_url"`
	AuthorID    string         `gorm:"type:varchar(25);not null" json:"author_id"`
	CategoryID  *string        `gorm:"type:varchar(25);index" json:"category_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate hook to generate CUID
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = cuid.New()
	}
	return nil
}

// LocalizedContent implements content.Localized.
func (p *Post) LocalizedContent(l content.Locale) string {
	switch l {
	case content.English:
		return p.ContentEn
	case content.Spanish:
		return p.ContentEs
	case content.French:
		return p.ContentFr
	}
	return ""
}

// LocalizedTitle returns the raw title stored for l.
func (p *Post) LocalizedTitle(l content.Locale) string {
	switch l {
	case content.English:
		return p.TitleEn
	case content.Spanish:
		return p.TitleEs
	case content.French:
		return p.TitleFr
	}
	return ""
}

// SetContent stores raw HTML for l. Unknown locales are ignored.
func (p *Post) SetContent(l content.Locale, html string) {
	switch l {
	case content.English:
		p.ContentEn = html
	case content.Spanish:
		p.ContentEs = html
	case content.French:
		p.ContentFr = html
	}
}

// SetTitle stores the title for l. Unknown locales are ignored.
func (p *Post) SetTitle(l content.Locale, title string) {
	switch l {
	case content.English:
		p.TitleEn = title
	case content.Spanish:
		p.TitleEs = title
	case content.French:
		p.TitleFr = title
	}
}

type Comment struct {
	ID         string         `gorm:"primaryKey;type:varchar(25)" json:"id"`
	PostID     string         `gorm:"type:varchar(25);not null;index" json:"post_id"`
	AuthorName string         `gorm:"not null" json:"author_name"`
	Email      string         `gorm:"not null" json:"-"`
	Body       string         `gorm:"type:text;not null" json:"body"` // Plain text only
	Approved   bool           `gorm:"default:false;index" json:"approved"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate CUID
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = cuid.New()
	}
	return nil
}

type Subscriber struct {
	ID        string         `gorm:"primaryKey;type:varchar(25)" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Locale    string         `gorm:"type:varchar(5);default:'en'" json:"locale"`
	Token     string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"` // Unsubscribe token
	Confirmed bool           `gorm:"default:false" json:"confirmed"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate CUID and the unsubscribe token
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = cuid.New()
	}
	if s.Token == "" {
		s.Token = uuid.NewString()
	}
	return nil
}

// All lists every model managed by AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Post{},
		&Comment{},
		&Subscriber{},
	}
}
