// Package reel is a programmatic video compositing engine.
//
// # Overview
//
// reel builds videos from a timeline of visual clips (video files, still
// images, rendered text, nested composites), each carrying time-varying
// position, opacity and scale plus an optional coverage mask. A Writer
// renders the timeline frame by frame, streams raw frames into an external
// ffmpeg encoder process, concatenates the encoded chunks and muxes the
// mixed audio tracks into the final output file.
//
// # Quick Start
//
//	import "github.com/reelkit/reel"
//
//	video, _ := reel.NewVideoClip("background.mp4")
//
//	title, _ := reel.NewTextClip("Hello!", reel.TextStyle{Size: 48}, 4.0)
//	title.SetStart(2.0).
//		SetPosition(reel.Constant(reel.Pt(100, 100))).
//		SetOpacity(reel.Constant(0.8))
//
//	w := reel.NewWriter("out.mp4", reel.WithFPS(30), reel.WithSize(1920, 1080))
//	w.AddClip(video).AddClip(title)
//	if err := w.Write(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// # Timing Model
//
// Every clip is visible over the half-open interval [Start, End): the end
// instant is excluded so two clips sharing a boundary never render on the
// same frame. Rendering a clip outside its interval is a defined no-op.
//
// # Architecture
//
// The library is organized into:
//   - Clip layer: Clip, Prop, the Source variants (video, image, text, composite)
//   - Pixel core: Frame, Canvas, Coverage and the alpha blending kernels
//   - Scheduler: Writer with chunked rendering, concat and audio mux
//   - internal/ffkit: ffmpeg process plumbing (encode, decode, probe, mix)
//
// # Concurrency
//
// Clips are constructed and configured by a single goroutine, then handed to
// a Writer. Once Write has been called no clip may be mutated: the Writer
// clones every clip per render chunk, and each clone re-opens its own decode
// resources. External processes (ffmpeg encoders and decoders) provide the
// only parallelism that crosses process lines.
package reel
