// Package domain defines the persistence models for categories and courses.
// These types are mapped with GORM and form the core data layer of the
// course catalog application.
package domain

// Category groups courses under a human-readable name. Names are unique
// across all categories; uniqueness is enforced by the store, not by the
// service layer.
//
// Fields:
//   - ID: integer primary key assigned by the store on insert (immutable).
//   - Name: non-blank, unique category name.
type Category struct {
	ID   int64  `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:ux_categories_name"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Course is a teachable unit that belongs to exactly one Category. The
// category reference is required and non-owning: deleting a category that
// still has courses is rejected by the store (RESTRICT), while renaming one
// cascades through the foreign key.
//
// Fields:
//   - ID: integer primary key assigned by the store on insert.
//   - Name: non-blank, unique course name.
//   - CategoryID: foreign key to the owning category (never zero).
//   - Category: the resolved parent, embedded in JSON responses.
type Course struct {
	ID         int64  `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:ux_courses_name"`
	CategoryID int64  `json:"-"    gorm:"not null;index:idx_courses_category"`

	// Category is the parent record, resolved at write time and preloaded
	// on reads so API responses always carry the full object.
	Category Category `json:"category" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Course.
func (Course) TableName() string { return "courses" }
