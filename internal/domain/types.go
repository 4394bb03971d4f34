package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CaseStudyStatusDraft     = "draft"
	CaseStudyStatusPublished = "published"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// CaseStudy is a questionnaire-backed write-up. Answers holds the raw answer
// map keyed by field id; Content is the generated Markdown (empty until the
// first draft generation).
type CaseStudy struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title    string         `gorm:"not null;column:title" json:"title"`
	Template string         `gorm:"not null;column:template" json:"template"`
	Status   string         `gorm:"not null;default:'draft';column:status" json:"status"`
	Content  string         `gorm:"column:content" json:"content"`
	Answers  datatypes.JSON `gorm:"column:answers" json:"answers"`

	// Sample marks seeded showcase rows. They appear in the public gallery
	// but are invisible to owner-scoped reads and writes.
	Sample bool `gorm:"not null;default:false;column:sample" json:"sample"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CaseStudy) TableName() string { return "case_study" }

// MarketingContent caches the synthesized showcase copy per designer key.
// A row is fresh only while CaseStudyCount still matches the designer's
// current published-case-study count.
type MarketingContent struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Designer       string         `gorm:"uniqueIndex;not null;column:designer" json:"designer"`
	HeroTitle      string         `gorm:"not null;column:hero_title" json:"hero_title"`
	HeroSubtitle   string         `gorm:"not null;column:hero_subtitle" json:"hero_subtitle"`
	Highlights     datatypes.JSON `gorm:"column:highlights" json:"highlights"`
	Tagline        string         `gorm:"not null;column:tagline" json:"tagline"`
	CaseStudyCount int            `gorm:"not null;default:0;column:case_study_count" json:"case_study_count"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarketingContent) TableName() string { return "marketing_content" }
