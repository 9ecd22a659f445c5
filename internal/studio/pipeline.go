package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/models"
	"github.com/nexio-app/nexio-api/pkg/ai"
)

// Step is the pipeline position: capture → edit → upload, with
// edit → capture on discard. Completion is signalled by Post, not by a
// terminal step.
type Step string

// Pipeline steps.
const (
	StepCapture Step = "capture"
	StepEdit    Step = "edit"
	StepUpload  Step = "upload"
)

// Mode selects what kind of post the pipeline produces.
type Mode string

// Pipeline modes. Micro collects free text and skips the edit step.
const (
	ModeVideo Mode = "video"
	ModePhoto Mode = "photo"
	ModeMicro Mode = "micro"
)

var (
	// ErrWrongStep indicates an operation was invoked outside its step.
	ErrWrongStep = errors.New("operation not valid in current step")
	// ErrAlreadyPosted indicates Post was called twice for one draft.
	ErrAlreadyPosted = errors.New("draft was already posted")
)

// SmartTags returns the canned tag set assigned after caption
// generation. The last entry reflects the active filter.
func SmartTags(filter Filter) []string {
	return []string{"#NexiOCreator", "#FutureVibes", "#Trending", fmt.Sprintf("#%sStyle", filter.Name)}
}

// Uploader materializes a captured frame into a hosted image URL.
type Uploader interface {
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}

// Poster receives the finished draft. The store satisfies this.
type Poster interface {
	AddPost(ctx context.Context, draft models.PostDraft) models.Post
}

// Pipeline drives one capture → edit → upload flow producing exactly one
// post draft. It is not safe for concurrent use except for the delayed
// smart-tag assignment, which is guarded internally.
type Pipeline struct {
	source    CaptureSource
	uploader  Uploader
	generator ai.Generator
	poster    Poster
	logger    zerolog.Logger
	tagDelay  time.Duration

	mu        sync.Mutex
	step      Step
	mode      Mode
	filterIdx int
	content   string
	caption   string
	aiCaption bool
	smartTags []string
	posted    bool
}

// NewPipeline starts a flow in the capture step. Source and uploader may
// be nil; the pipeline substitutes a placeholder image when either is
// missing or failing.
func NewPipeline(mode Mode, source CaptureSource, uploader Uploader, generator ai.Generator, poster Poster, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		source:    source,
		uploader:  uploader,
		generator: generator,
		poster:    poster,
		logger:    logger.With().Str("component", "studio_pipeline").Logger(),
		tagDelay:  time.Second,
		step:      StepCapture,
		mode:      mode,
	}
}

// Step reports the current pipeline position.
func (p *Pipeline) Step() Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step
}

// Filter returns the active cosmetic filter.
func (p *Pipeline) Filter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Filters[p.filterIdx]
}

// CycleFilter advances to the next filter in the ring.
func (p *Pipeline) CycleFilter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filterIdx = (p.filterIdx + 1) % len(Filters)
	return Filters[p.filterIdx]
}

// CaptureText collects free text in micro mode and moves straight to the
// upload step.
func (p *Pipeline) CaptureText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.step != StepCapture || p.mode != ModeMicro {
		return ErrWrongStep
	}

	p.caption = text
	p.step = StepUpload
	return nil
}

// CaptureFrame grabs one frame from the capture source with the active
// filter applied and materializes it as a hosted image, then moves to the
// edit step. Any capture or upload failure substitutes the placeholder
// image so the flow can still complete.
func (p *Pipeline) CaptureFrame(ctx context.Context) error {
	p.mu.Lock()
	if p.step != StepCapture || p.mode == ModeMicro {
		p.mu.Unlock()
		return ErrWrongStep
	}
	filter := Filters[p.filterIdx]
	p.mu.Unlock()

	content := p.materializeFrame(ctx, filter)

	p.mu.Lock()
	p.content = content
	p.step = StepEdit
	p.mu.Unlock()
	return nil
}

func (p *Pipeline) materializeFrame(ctx context.Context, filter Filter) string {
	if p.source == nil {
		return placeholderURL()
	}

	handle, err := p.source.StartCapture(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("capture source unavailable, substituting placeholder")
		return placeholderURL()
	}
	defer func() {
		if stopErr := p.source.StopCapture(handle); stopErr != nil {
			p.logger.Debug().Err(stopErr).Msg("failed to stop capture source")
		}
	}()

	frame, err := p.source.GrabFrame(handle, filter)
	if err != nil {
		p.logger.Warn().Err(err).Msg("frame grab failed, substituting placeholder")
		return placeholderURL()
	}

	if p.uploader == nil {
		return placeholderURL()
	}

	url, err := p.uploader.UploadImage(ctx, fmt.Sprintf("studio-%s", filter.Name), frame)
	if err != nil {
		p.logger.Warn().Err(err).Msg("frame upload failed, substituting placeholder")
		return placeholderURL()
	}

	return url
}

// SetCaption updates the drafted caption in the edit or upload step.
func (p *Pipeline) SetCaption(caption string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.step != StepEdit && p.step != StepUpload {
		return ErrWrongStep
	}
	p.caption = caption
	return nil
}

// ToggleAICaption flips the AI auto-caption switch in the edit step.
func (p *Pipeline) ToggleAICaption() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.step != StepEdit {
		return ErrWrongStep
	}
	p.aiCaption = !p.aiCaption
	return nil
}

// Discard abandons all draft state and returns to the capture step.
func (p *Pipeline) Discard() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.step != StepEdit {
		return ErrWrongStep
	}

	p.content = ""
	p.caption = ""
	p.aiCaption = false
	p.smartTags = nil
	p.step = StepCapture
	return nil
}

// Next advances from the edit step to the upload step.
func (p *Pipeline) Next() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.step != StepEdit {
		return ErrWrongStep
	}
	p.step = StepUpload
	return nil
}

// GenerateCaption replaces the caption via the generation service, using
// the active filter name as the mood. The canned smart tags are assigned
// after a fixed delay once generation completes.
func (p *Pipeline) GenerateCaption(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.step != StepUpload {
		p.mu.Unlock()
		return "", ErrWrongStep
	}
	filter := Filters[p.filterIdx]
	delay := p.tagDelay
	p.mu.Unlock()

	caption := p.generator.GenerateCaption(ctx, filter.Name, "A cool creation in NexiO studio")

	p.mu.Lock()
	p.caption = caption
	p.mu.Unlock()

	if delay <= 0 {
		p.assignSmartTags(filter)
	} else {
		time.AfterFunc(delay, func() { p.assignSmartTags(filter) })
	}

	return caption, nil
}

func (p *Pipeline) assignSmartTags(filter Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.smartTags = SmartTags(filter)
}

// Caption returns the drafted caption.
func (p *Pipeline) Caption() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caption
}

// Tags returns the assigned smart tags, nil until generation completes.
func (p *Pipeline) Tags() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.smartTags...)
}

// Post hands the finished draft to the store exactly once and completes
// the flow. The caller closes the flow afterwards.
func (p *Pipeline) Post(ctx context.Context) (models.PostDraft, error) {
	p.mu.Lock()
	if p.step != StepUpload {
		p.mu.Unlock()
		return models.PostDraft{}, ErrWrongStep
	}
	if p.posted {
		p.mu.Unlock()
		return models.PostDraft{}, ErrAlreadyPosted
	}

	draft := models.PostDraft{Tags: append([]string(nil), p.smartTags...)}
	switch p.mode {
	case ModeMicro:
		draft.Type = models.PostMicro
		draft.Content = p.caption
		draft.Caption = ""
	case ModeVideo:
		draft.Type = models.PostVideo
		draft.Content = p.content
		draft.Caption = p.caption
	default:
		draft.Type = models.PostImage
		draft.Content = p.content
		draft.Caption = p.caption
	}
	p.posted = true
	p.mu.Unlock()

	p.poster.AddPost(ctx, draft)
	return draft, nil
}
