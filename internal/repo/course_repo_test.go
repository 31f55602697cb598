package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-course-catalog/internal/domain"
)

func mustCreateCourse(t *testing.T, db *gorm.DB, name string, cat domain.Category) *domain.Course {
	t.Helper()
	c, err := CreateCourse(context.Background(), db, name, cat)
	if err != nil {
		t.Fatalf("CreateCourse(%q): %v", name, err)
	}
	return c
}

func TestCreateCourse_EmbedsResolvedCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cat := mustCreateCategory(t, db, "Technology")
	course := mustCreateCourse(t, db, "Go from scratch", *cat)

	if course.ID == 0 {
		t.Fatal("created course has zero id")
	}
	if course.CategoryID != cat.ID || course.Category.Name != "Technology" {
		t.Fatalf("created course = %+v", course)
	}

	// The insert must not have touched the parent row.
	got, err := GetCategory(ctx, db, cat.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Technology" {
		t.Fatalf("category changed by course insert: %+v", got)
	}
}

func TestCreateCourse_DuplicateName(t *testing.T) {
	db := newTestDB(t)

	cat := mustCreateCategory(t, db, "Technology")
	mustCreateCourse(t, db, "Go from scratch", *cat)
	if _, err := CreateCourse(context.Background(), db, "Go from scratch", *cat); err == nil {
		t.Fatal("duplicate name insert succeeded, want unique-constraint error")
	}
}

func TestGetCourse_PreloadsCategory(t *testing.T) {
	db := newTestDB(t)

	cat := mustCreateCategory(t, db, "Technology")
	created := mustCreateCourse(t, db, "Go from scratch", *cat)

	got, err := GetCourse(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if got.Name != "Go from scratch" || got.Category.ID != cat.ID || got.Category.Name != "Technology" {
		t.Fatalf("GetCourse = %+v", got)
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetCourse(context.Background(), db, 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCourse err = %v, want ErrNotFound", err)
	}
}

func TestCourseFilter_MatchesCourseOrCategoryName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tech := mustCreateCategory(t, db, "Technology")
	arts := mustCreateCategory(t, db, "Arts")
	mustCreateCourse(t, db, "Go from scratch", *tech)
	mustCreateCourse(t, db, "Advanced Go", *tech)
	mustCreateCourse(t, db, "Watercolors", *arts)

	// Course-name match.
	total, err := CountCourses(ctx, db, "go")
	if err != nil {
		t.Fatalf("CountCourses: %v", err)
	}
	if total != 2 {
		t.Fatalf("count for %q = %d, want 2", "go", total)
	}

	// Category-name match pulls in every course under the category.
	rows, err := ListCoursesPage(ctx, db, "tech", 0, 10)
	if err != nil {
		t.Fatalf("ListCoursesPage: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("filter %q matched %d courses, want 2", "tech", len(rows))
	}
	for _, r := range rows {
		if r.Category.Name != "Technology" {
			t.Fatalf("category not preloaded on filtered page: %+v", r)
		}
	}

	// Mixed case is normalized in SQL on both sides.
	upper, err := CountCourses(ctx, db, "GO")
	if err != nil {
		t.Fatalf("CountCourses: %v", err)
	}
	if upper != 2 {
		t.Fatalf("count for %q = %d, want 2", "GO", upper)
	}

	none, err := CountCourses(ctx, db, "nomatch")
	if err != nil {
		t.Fatalf("CountCourses: %v", err)
	}
	if none != 0 {
		t.Fatalf("count for %q = %d, want 0", "nomatch", none)
	}
}

func TestCourseFilter_MatchesOwnNonASCIIName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cat := mustCreateCategory(t, db, "Fremdsprachen")
	mustCreateCourse(t, db, "Straßenfotografie", *cat)

	total, err := CountCourses(ctx, db, "Straßenfotografie")
	if err != nil {
		t.Fatalf("CountCourses: %v", err)
	}
	if total != 1 {
		t.Fatalf("filter %q matched %d courses, want 1 (its own name)", "Straßenfotografie", total)
	}

	// Category-name side of the OR gets the same treatment.
	rows, err := ListCoursesPage(ctx, db, "Fremdsprachen", 0, 10)
	if err != nil {
		t.Fatalf("ListCoursesPage: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Straßenfotografie" {
		t.Fatalf("filter %q matched %+v", "Fremdsprachen", rows)
	}
}

func TestListCourses_PreloadsCategories(t *testing.T) {
	db := newTestDB(t)

	tech := mustCreateCategory(t, db, "Technology")
	arts := mustCreateCategory(t, db, "Arts")
	mustCreateCourse(t, db, "Go from scratch", *tech)
	mustCreateCourse(t, db, "Watercolors", *arts)

	out, err := ListCourses(context.Background(), db)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("ListCourses returned %d rows, want 2", len(out))
	}
	if out[0].Category.Name != "Technology" || out[1].Category.Name != "Arts" {
		t.Fatalf("ListCourses = %+v", out)
	}
}

func TestListCoursesByCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tech := mustCreateCategory(t, db, "Technology")
	arts := mustCreateCategory(t, db, "Arts")
	a := mustCreateCourse(t, db, "Go from scratch", *tech)
	b := mustCreateCourse(t, db, "Advanced Go", *tech)
	mustCreateCourse(t, db, "Watercolors", *arts)

	out, err := ListCoursesByCategory(ctx, db, tech.ID)
	if err != nil {
		t.Fatalf("ListCoursesByCategory: %v", err)
	}
	if len(out) != 2 || out[0].ID != a.ID || out[1].ID != b.ID {
		t.Fatalf("ListCoursesByCategory = %+v", out)
	}

	none, err := ListCoursesByCategory(ctx, db, 999)
	if err != nil {
		t.Fatalf("ListCoursesByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("absent category matched %+v", none)
	}
}

func TestUpdateCourse_MovesCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tech := mustCreateCategory(t, db, "Technology")
	arts := mustCreateCategory(t, db, "Arts")
	course := mustCreateCourse(t, db, "Sketching", *tech)

	course.Name = "Figure sketching"
	course.CategoryID = arts.ID
	course.Category = *arts
	if _, err := UpdateCourse(ctx, db, course); err != nil {
		t.Fatalf("UpdateCourse: %v", err)
	}

	got, err := GetCourse(ctx, db, course.ID)
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if got.Name != "Figure sketching" || got.Category.ID != arts.ID {
		t.Fatalf("course after update = %+v", got)
	}
}

func TestDeleteCourse_AbsentID(t *testing.T) {
	db := newTestDB(t)

	if err := DeleteCourse(context.Background(), db, 999); err != nil {
		t.Fatalf("deleting an absent id must succeed, got %v", err)
	}
}
