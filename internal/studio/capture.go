package studio

import (
	"context"
	"fmt"
	"time"
)

// Filter is a cosmetic pixel-level filter applied to the viewfinder and
// to grabbed frames.
type Filter struct {
	Name string
	Spec string
}

// Filters is the fixed filter ring, cycled in order.
var Filters = []Filter{
	{Name: "Normal", Spec: "none"},
	{Name: "Cyber", Spec: "sepia(50%) hue-rotate(180deg) saturate(200%)"},
	{Name: "Noir", Spec: "grayscale(100%) contrast(120%)"},
	{Name: "Vivid", Spec: "saturate(300%) contrast(110%)"},
	{Name: "Alien", Spec: "hue-rotate(90deg) brightness(110%)"},
	{Name: "Retro", Spec: "contrast(150%) saturate(0%) sepia(100%)"},
}

// FrameHandle identifies a live capture session on the media device.
type FrameHandle interface{}

// CaptureSource is the device media collaborator. Its absence or failure
// must never block the pipeline; a placeholder image is substituted
// instead.
type CaptureSource interface {
	StartCapture(ctx context.Context) (FrameHandle, error)
	GrabFrame(handle FrameHandle, filter Filter) ([]byte, error)
	StopCapture(handle FrameHandle) error
}

// placeholderURL returns the stand-in image reference used when no
// capture source or uploader is available.
func placeholderURL() string {
	return fmt.Sprintf("https://picsum.photos/600/800?random=%d", time.Now().UnixMilli())
}
