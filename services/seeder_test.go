package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDestroyer struct{ called bool }

func (d *fakeDestroyer) Destroy(context.Context) error {
	d.called = true
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeeder_Import(t *testing.T) {
	bootcampSvc, bootcampStore, _ := newBootcampFixture(t)
	courseStore := newFakeCourseStore()
	courseSvc := NewCourseService(courseStore, bootcampStore, validation.NewValidator())
	destroyer := &fakeDestroyer{}
	seeder := NewSeeder(bootcampSvc, courseSvc, destroyer)

	dir := t.TempDir()
	bootcamps := writeFile(t, dir, "bootcamps.json", `[{
		"id": "5d713995b721c3bb38c1f5d0",
		"name": "Devworks Bootcamp",
		"description": "Devworks is a full stack JavaScript Bootcamp",
		"website": "https://devworks.com",
		"address": "233 Bay State Rd Boston MA 02215",
		"careers": ["Web Development", "UI/UX", "Business"],
		"housing": true
	}]`)
	courses := writeFile(t, dir, "courses.json", `[{
		"title": "Front End Web Development",
		"description": "This course will provide you with all of the essentials",
		"weeks": "8",
		"tuition": 8000,
		"minimumSkill": "beginner",
		"bootcamp": "5d713995b721c3bb38c1f5d0"
	}]`)

	require.NoError(t, seeder.Import(context.Background(), bootcamps, courses))

	assert.Equal(t, 1, bootcampStore.count())
	all, _, err := courseStore.List(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)

	for _, b := range bootcampStore.bootcamps {
		assert.Equal(t, b.ID, all[0].BootcampID, "course is linked to the newly created bootcamp")
		assert.Equal(t, "devworks_bootcamp", b.NameSlug)
	}

	require.NoError(t, seeder.Destroy(context.Background()))
	assert.True(t, destroyer.called)
}

func TestSeeder_UnknownBootcampReference(t *testing.T) {
	bootcampSvc, bootcampStore, _ := newBootcampFixture(t)
	courseSvc := NewCourseService(newFakeCourseStore(), bootcampStore, validation.NewValidator())
	seeder := NewSeeder(bootcampSvc, courseSvc, &fakeDestroyer{})

	err := seeder.ImportRecords(context.Background(), nil, []SeedCourse{{Bootcamp: "missing"}})
	assert.ErrorContains(t, err, `unknown bootcamp "missing"`)
}
