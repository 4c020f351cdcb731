package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voya/internal/infra"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

type fakeVideoSaver struct {
	dir string
	err error
}

var _ VideoSaverInterface = (*fakeVideoSaver)(nil)

func (f *fakeVideoSaver) Save(name string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, filepath.Base(name))
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0o644)
}

func newTikTokService(t *testing.T, transcriber utils.TranscriberInterface, llm utils.LLMClientInterface) (*TikTokService, *mem.TikTokCollection) {
	t.Helper()
	collection := mem.NewTikTokCollection()
	svc := NewTikTokService(transcriber, llm, &fakeVideoSaver{dir: t.TempDir()}, collection, time.Second, time.Second).(*TikTokService)
	return svc, collection
}

func TestTikTokService_UploadRunsBothStages(t *testing.T) {
	var gotName string
	var gotBody []byte
	transcriber := &fakeTranscriber{transcribe: func(_ context.Context, filename string, audio io.Reader) (string, error) {
		gotName = filename
		gotBody, _ = io.ReadAll(audio)
		return " Best tagine of my life in Marrakech! ", nil
	}}
	llm := llmReturning(`{"name":"Market food tour","location":"Marrakech, Morocco","description":"Tagine and mint tea","category":"Food"}`, nil)
	svc, collection := newTikTokService(t, transcriber, llm)

	activity, err := svc.Upload(context.Background(), "u1", "clip.mp4", bytes.NewReader([]byte("video-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", gotName)
	assert.Equal(t, []byte("video-bytes"), gotBody)
	assert.NotEmpty(t, activity.ID)
	assert.Equal(t, "Market food tour", activity.Name)
	assert.Equal(t, "Marrakech, Morocco", activity.Location)
	assert.Equal(t, "Best tagine of my life in Marrakech!", activity.Transcription)
	assert.True(t, strings.HasSuffix(activity.VideoPath, "clip.mp4"))
	assert.Len(t, collection.List("u1"), 1)
	assert.Empty(t, collection.List(""))
}

func TestTikTokService_UploadTranscriptionFailureIsDistinct(t *testing.T) {
	transcriber := &fakeTranscriber{transcribe: func(context.Context, string, io.Reader) (string, error) {
		return "", utils.NewTranscriptionError("Invalid file format", errors.New("400"))
	}}
	llm := llmReturning(`{}`, nil)
	svc, collection := newTikTokService(t, transcriber, llm)

	_, err := svc.Upload(context.Background(), "", "clip.mp4", strings.NewReader("x"))
	require.ErrorIs(t, err, utils.ErrTranscriptionFailed)
	var providerErr *utils.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "transcription", providerErr.Stage)
	assert.Empty(t, llm.calls)
	assert.Empty(t, collection.List(""))
}

func TestTikTokService_UploadSilentVideoFallsBack(t *testing.T) {
	transcriber := &fakeTranscriber{transcribe: func(context.Context, string, io.Reader) (string, error) {
		return "  ", nil
	}}
	llm := llmReturning(`{"name":"Should not be used"}`, nil)
	svc, collection := newTikTokService(t, transcriber, llm)

	activity, err := svc.Upload(context.Background(), "u1", "beach.mp4", strings.NewReader("video-bytes"))
	require.NoError(t, err)

	assert.Empty(t, llm.calls)
	assert.Equal(t, "TikTok Activity", activity.Name)
	assert.Equal(t, "Unknown Location", activity.Location)
	assert.Equal(t, "General", activity.Category)
	assert.Empty(t, activity.Transcription)
	assert.NotEmpty(t, activity.VideoPath)
	assert.Len(t, collection.List("u1"), 1)

	_, err = svc.ExtractActivity(context.Background(), "")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestTikTokService_UploadRejectsNonVideo(t *testing.T) {
	svc, _ := newTikTokService(t, &fakeTranscriber{}, llmReturning("", nil))
	svc.videos = &fakeVideoSaver{err: infra.ErrNotAVideo}

	_, err := svc.Upload(context.Background(), "", "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrUnsupportedMedia)
}

func TestTikTokService_NotConfigured(t *testing.T) {
	svc, _ := newTikTokService(t, nil, nil)

	_, err := svc.Upload(context.Background(), "", "clip.mp4", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)

	_, err = svc.Transcribe(context.Background(), "clip.mp4", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)

	_, err = svc.ExtractActivity(context.Background(), "some text")
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)
}

func TestTikTokService_TranscribeWrapsPlainErrors(t *testing.T) {
	transcriber := &fakeTranscriber{transcribe: func(context.Context, string, io.Reader) (string, error) {
		return "", errors.New("connection reset")
	}}
	svc, _ := newTikTokService(t, transcriber, nil)

	_, err := svc.Transcribe(context.Background(), "a.mp4", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrTranscriptionFailed)
}

func TestTikTokService_ExtractDefaults(t *testing.T) {
	svc, _ := newTikTokService(t, nil, llmReturning(`{"name":"Sunset cruise"}`, nil))

	got, err := svc.ExtractActivity(context.Background(), "we took a boat")
	require.NoError(t, err)
	assert.Equal(t, "Sunset cruise", got.Name)
	assert.Equal(t, "Unknown Location", got.Location)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, "Activity extracted from TikTok video", got.Description)
}

func TestTikTokService_ExtractFallback(t *testing.T) {
	long := strings.Repeat("word ", 40)

	for name, llm := range map[string]*fakeLLM{
		"unparseable":    llmReturning("no json here", nil),
		"provider error": llmReturning("", errors.New("boom")),
	} {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTikTokService(t, nil, llm)

			got, err := svc.ExtractActivity(context.Background(), long)
			require.NoError(t, err)
			assert.Equal(t, "TikTok Activity", got.Name)
			assert.Equal(t, "Unknown Location", got.Location)
			assert.Equal(t, "General", got.Category)
			assert.Equal(t, "Activity from TikTok: "+strings.TrimSpace(long)[:100]+"...", got.Description)
		})
	}
}

func TestTikTokService_ExtractRequiresText(t *testing.T) {
	svc, _ := newTikTokService(t, nil, llmReturning("{}", nil))
	_, err := svc.ExtractActivity(context.Background(), "  ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestTikTokService_DemoAndGrouping(t *testing.T) {
	svc, _ := newTikTokService(t, nil, nil)
	picks := []int{0, 4, 0}
	svc.pick = func(int) int {
		p := picks[0]
		picks = picks[1:]
		return p
	}

	first := svc.Demo("u1")
	second := svc.Demo("u1")
	third := svc.Demo("u1")

	assert.Equal(t, "Sushi Making Class", first.Name)
	assert.Equal(t, "Local Market Food Tour", second.Name)
	assert.NotEqual(t, first.ID, third.ID)
	assert.False(t, first.CreatedAt.IsZero())

	assert.Len(t, svc.ListActivities("u1"), 3)

	groups := svc.GroupByLocation("u1")
	require.Len(t, groups, 2)
	assert.Equal(t, "Tokyo, Japan", groups[0].Location)
	assert.Len(t, groups[0].Activities, 2)
	assert.Equal(t, "Marrakech, Morocco", groups[1].Location)

	assert.Empty(t, svc.GroupByLocation("nobody"))
}
