package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	svc      *GenerationService
	store    *memoryStore
	provider *fakeProvider
	images   *fakeImages
	objects  *fakeObjectStore
}

func newGenerationFixture() *generationFixture {
	store := newMemoryStore()
	f := &generationFixture{
		store:    store,
		provider: &fakeProvider{reply: "print('hi')\nprint('bye')\n"},
		images:   &fakeImages{image: []byte{0x89, 'P', 'N', 'G'}},
		objects:  newFakeObjectStore(),
	}
	projects := NewProjectService(&fakeProjectRepo{store: store})
	f.svc = NewGenerationService(projects, f.provider, f.images, f.objects, nil)
	return f
}

func TestGenerate_Code(t *testing.T) {
	f := newGenerationFixture()

	res, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeCode, Prompt: "a Python script"})
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectTypeCode, res.Type)
	assert.Equal(t, domain.LanguagePython, res.Language)
	assert.Equal(t, f.provider.reply, res.Code)

	require.Len(t, f.store.projects, 1)
	p := f.store.projects[0]
	assert.Equal(t, res.ProjectID, p.ID)
	assert.Equal(t, "a Python script", p.Title)
	assert.Equal(t, f.provider.reply, p.Content)
	require.NotNil(t, p.Language)
	assert.Equal(t, "python", *p.Language)
	assert.JSONEq(t, `{"lines":2}`, string(p.Metadata))

	require.Len(t, f.provider.calls, 1)
	call := f.provider.calls[0]
	assert.InDelta(t, CodeTemperature, call.options.Temperature, 1e-9)
	assert.Equal(t, CodeMaxTokens, call.options.MaxTokens)
	require.Len(t, call.history, 2)
	assert.Equal(t, CodeSystemPrompt, call.history[0].Content)
	assert.Equal(t, "a Python script", call.history[1].Content)
}

func TestGenerate_CodeTitleTruncated(t *testing.T) {
	f := newGenerationFixture()

	_, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeCode, Prompt: strings.Repeat("p", 300)})
	require.NoError(t, err)
	assert.Len(t, f.store.projects[0].Title, ProjectTitleLength)
}

func TestGenerate_CodeUpstreamFailure(t *testing.T) {
	f := newGenerationFixture()
	f.provider.err = disol_errors.Upstream("completion API error", nil)

	_, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeCode, Prompt: "x"})
	assert.Equal(t, disol_errors.KindUpstream, disol_errors.KindOf(err))
	assert.Empty(t, f.store.projects)
}

func TestGenerate_Image(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.WithValue(context.Background(), logger.RequestIdKey, "req-123")

	res, err := f.svc.Generate(ctx, GenerateInput{UserID: "u1", Type: domain.ProjectTypeImage, Prompt: "a red fox"})
	require.NoError(t, err)

	key := "images/u1_req-123.png"
	assert.Equal(t, f.images.image, f.objects.objects[key])
	assert.Equal(t, "image/png", f.objects.types[key])
	assert.Equal(t, f.objects.FileURL(key), res.URL)

	require.Len(t, f.store.projects, 1)
	p := f.store.projects[0]
	assert.Equal(t, res.ProjectID, p.ID)
	assert.Equal(t, string(domain.ProjectTypeImage), p.Type)
	assert.Equal(t, res.URL, p.Content)
	assert.JSONEq(t, `{"format":"PNG","size":"1024x1024"}`, string(p.Metadata))
}

func TestGenerate_ImageUpstreamFailureSkipsInsert(t *testing.T) {
	f := newGenerationFixture()
	f.images.err = disol_errors.Upstream("image generation failed", nil)

	_, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeImage, Prompt: "fox"})
	require.Error(t, err)
	assert.Equal(t, 500, disol_errors.StatusCode(err))
	assert.Empty(t, f.objects.objects)
	assert.Empty(t, f.store.projects)
}

func TestGenerate_ImageStorageNotConfigured(t *testing.T) {
	f := newGenerationFixture()
	f.objects.configErr = disol_errors.Configuration("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required")

	_, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeImage, Prompt: "fox"})
	assert.Equal(t, disol_errors.KindConfiguration, disol_errors.KindOf(err))
	assert.Zero(t, f.images.calls)
	assert.Empty(t, f.store.projects)
}

func TestGenerate_ImageUploadFailure(t *testing.T) {
	f := newGenerationFixture()
	f.objects.putErr = errBoom

	_, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeImage, Prompt: "fox"})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.store.projects)
}

func TestGenerate_Video(t *testing.T) {
	f := newGenerationFixture()

	res, err := f.svc.Generate(context.Background(), GenerateInput{UserID: "u1", Type: domain.ProjectTypeVideo, Prompt: "a movie"})
	require.NoError(t, err)
	assert.Equal(t, VideoNotAvailableMessage, res.Message)
	assert.Empty(t, f.store.projects)
	assert.Empty(t, f.provider.calls)
	assert.Zero(t, f.images.calls)
}

func TestGenerate_Validation(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()

	cases := []GenerateInput{
		{Type: domain.ProjectTypeCode, Prompt: "x"},
		{UserID: "u1", Prompt: "x"},
		{UserID: "u1", Type: domain.ProjectTypeCode},
		{UserID: "u1", Type: "audio", Prompt: "x"},
	}
	for _, in := range cases {
		_, err := f.svc.Generate(ctx, in)
		assert.Equal(t, disol_errors.KindValidation, disol_errors.KindOf(err), "%+v", in)
	}
	assert.Empty(t, f.store.projects)
}

func TestRequestSuffix(t *testing.T) {
	ctx := context.WithValue(context.Background(), logger.RequestIdKey, "abc-123")
	assert.Equal(t, "abc-123", requestSuffix(ctx))

	unsafe := context.WithValue(context.Background(), logger.RequestIdKey, "../../etc")
	assert.Len(t, requestSuffix(unsafe), 36)

	assert.Len(t, requestSuffix(context.Background()), 36)
}
