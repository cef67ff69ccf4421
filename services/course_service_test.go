package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ojst60/DevBootcamp/model"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	courses   *CourseService
	bootcamps *BootcampService
	store     *fakeCourseStore
	bootcamp  *model.Bootcamp
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()

	bootcampSvc, bootcampStore, _ := newBootcampFixture(t)
	courseStore := newFakeCourseStore()
	bootcampStore.courses = courseStore

	b, err := bootcampSvc.Create(context.Background(), devworksRequest())
	require.NoError(t, err)

	return &courseFixture{
		courses:   NewCourseService(courseStore, bootcampStore, validation.NewValidator()),
		bootcamps: bootcampSvc,
		store:     courseStore,
		bootcamp:  b,
	}
}

func frontEndCourse() CreateCourseRequest {
	tuition := 8000.0
	return CreateCourseRequest{
		Title:                " Front End Web Development ",
		Description:          "This course will provide you with all of the essentials to become a successful frontend web developer.",
		Weeks:                "8",
		Tuition:              &tuition,
		MinimumSkill:         model.SkillBeginner,
		ScholarshipAvailable: true,
	}
}

func TestCourseService_Create(t *testing.T) {
	f := newCourseFixture(t)

	c, err := f.courses.Create(context.Background(), f.bootcamp.ID.String(), frontEndCourse())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Front End Web Development", c.Title)
	assert.Equal(t, f.bootcamp.ID, c.BootcampID)
	assert.Equal(t, 8000.0, *c.Tuition)
}

func TestCourseService_Create_Rejections(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	_, err := f.courses.Create(ctx, uuid.New().String(), frontEndCourse())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err), "bootcamp must exist")

	_, err = f.courses.Create(ctx, "nope", frontEndCourse())
	assert.Equal(t, apperror.KindInvalidID, apperror.KindOf(err))

	req := frontEndCourse()
	req.MinimumSkill = "expert"
	req.Tuition = nil
	_, err = f.courses.Create(ctx, f.bootcamp.ID.String(), req)
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "Minimum skill must be beginner, intermediate or advanced", appErr.Fields["minimumSkill"])
	assert.Equal(t, "Please add a tuition cost", appErr.Fields["tuition"])

	list, err := f.courses.List(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCourseService_List(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	_, err := f.courses.Create(ctx, f.bootcamp.ID.String(), frontEndCourse())
	require.NoError(t, err)

	other := devworksRequest()
	other.Name = "ModernTech Bootcamp"
	b2, err := f.bootcamps.Create(ctx, other)
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, b2.ID.String(), frontEndCourse())
	require.NoError(t, err)

	all, err := f.courses.List(ctx, "", map[string]string{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, int64(2), all.Total)

	scoped, err := f.courses.List(ctx, f.bootcamp.ID.String(), map[string]string{"sort": "-tuition"})
	require.NoError(t, err)
	require.Len(t, scoped.Items, 1)
	assert.Equal(t, f.bootcamp.ID, scoped.Items[0].BootcampID)

	_, err = f.courses.List(ctx, uuid.New().String(), nil)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.courses.List(ctx, "", map[string]string{"tuition[between]": "1"})
	assert.Equal(t, apperror.KindBadInput, apperror.KindOf(err))
}

func TestCourseService_UpdateAndDelete(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, f.bootcamp.ID.String(), frontEndCourse())
	require.NoError(t, err)

	skill := model.SkillIntermediate
	weeks := "12"
	updated, err := f.courses.Update(ctx, c.ID.String(), UpdateCourseRequest{MinimumSkill: &skill, Weeks: &weeks})
	require.NoError(t, err)
	assert.Equal(t, model.SkillIntermediate, updated.MinimumSkill)
	assert.Equal(t, "12", updated.Weeks)
	assert.Equal(t, f.bootcamp.ID, updated.BootcampID)

	bad := "guru"
	_, err = f.courses.Update(ctx, c.ID.String(), UpdateCourseRequest{MinimumSkill: &bad})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	require.NoError(t, f.courses.Delete(ctx, c.ID.String()))
	_, err = f.courses.Get(ctx, c.ID.String())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCourseService_BootcampDeleteCascades(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, f.bootcamp.ID.String(), frontEndCourse())
	require.NoError(t, err)

	require.NoError(t, f.bootcamps.Delete(ctx, f.bootcamp.ID.String()))

	_, err = f.courses.Get(ctx, c.ID.String())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
