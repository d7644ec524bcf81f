package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/osokin/composite/internal/config"
	"github.com/osokin/composite/internal/engine"
	"github.com/osokin/composite/internal/source"
	"github.com/osokin/composite/internal/system"
	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/video"
)

func main() {
	system.InitResourceLimits()

	os.MkdirAll("output", 0755)

	backgroundPtr := flag.String("background", "", "Background image path (empty: solid gray)")
	overlayPtr := flag.String("overlay", "", "Overlay: image path, PDF path or qr:CONTENT")
	outputPtr := flag.String("output", "", "Output path (empty: generated in output/)")
	widthPtr := flag.Int("width", 1280, "Output width")
	heightPtr := flag.Int("height", 720, "Output height")
	normWidthPtr := flag.Int("norm-width", 0, "Normalized width for geometry strings (0: output width)")
	normHeightPtr := flag.Int("norm-height", 0, "Normalized height for geometry strings (0: output height)")
	aspectPtr := flag.Float64("aspect", 0, "Display aspect ratio of the output (0: from preset)")
	presetPtr := flag.String("preset", "", "Format preset: pal, ntsc, 720p")
	fpsPtr := flag.Int("fps", 25, "Frames per second")
	framesPtr := flag.Int("frames", 75, "Number of output frames")
	inPtr := flag.Int("in", 0, "First frame of the transition window")
	outPtr := flag.Int("out", -1, "Last frame of the transition window (-1: frames-1)")
	startPtr := flag.String("start", config.DefaultStart, "Start geometry X[%],Y[%]:W[%]xH[%]:MIX[%]")
	endPtr := flag.String("end", "", "End geometry (empty: same as start)")
	halignPtr := flag.String("halign", "", "Horizontal alignment: l, c, r")
	valignPtr := flag.String("valign", "", "Vertical alignment: t, m, b")
	distortPtr := flag.Bool("distort", false, "Fill the box without preserving the overlay aspect")
	progressivePtr := flag.Bool("progressive", true, "Render progressive frames instead of two fields")
	scenarioPtr := flag.String("scenario", "", "Scenario YAML to load the transition from")
	pagePtr := flag.Int("page", 0, "PDF page index for PDF overlays")
	dpiPtr := flag.Int("dpi", 150, "Rendering DPI for PDF overlays")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel workers")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (0: auto)")
	rawPtr := flag.Bool("raw", false, "Write raw yuyv422 frames instead of encoding")
	statsPtr := flag.Bool("stats", false, "Print render statistics")

	flag.Parse()

	width, height := *widthPtr, *heightPtr
	aspect := *aspectPtr
	switch *presetPtr {
	case "pal":
		width, height = 720, 576
		if aspect == 0 {
			aspect = 4.0 / 3.0
		}
	case "ntsc":
		width, height = 720, 480
		if aspect == 0 {
			aspect = 4.0 / 3.0
		}
	case "720p":
		width, height = 1280, 720
		if aspect == 0 {
			aspect = 16.0 / 9.0
		}
	}
	if aspect == 0 {
		aspect = float64(width) / float64(height)
	}

	normWidth, normHeight := *normWidthPtr, *normHeightPtr
	if normWidth == 0 {
		normWidth = width
	}
	if normHeight == 0 {
		normHeight = height
	}

	frames := *framesPtr
	out := *outPtr
	if out < 0 {
		out = frames - 1
	}

	tc := config.Transition{
		Start:       *startPtr,
		End:         *endPtr,
		HAlign:      *halignPtr,
		VAlign:      *valignPtr,
		Distort:     *distortPtr,
		Progressive: *progressivePtr,
	}
	tc.Window.In = *inPtr
	tc.Window.Out = out

	if *scenarioPtr != "" {
		scenario, err := config.ReadScenario(*scenarioPtr)
		if err != nil {
			log.Fatalf("[-] Scenario read error: %v", err)
		}
		if len(scenario.Transitions) == 0 {
			log.Fatalf("[-] Scenario %s has no transitions", *scenarioPtr)
		}
		tc = scenario.Transitions[0]
		fmt.Printf("[*] Using scenario: %s\n", *scenarioPtr)
	}

	bg, err := buildBackground(*backgroundPtr, width, height, !tc.Progressive)
	if err != nil {
		log.Fatalf("[-] Background error: %v", err)
	}

	overlay, err := buildOverlay(*overlayPtr, *pagePtr, *dpiPtr)
	if err != nil {
		log.Fatalf("[-] Overlay error: %v", err)
	}
	if overlay == nil {
		fmt.Println("[!] No overlay configured, the background passes through unmodified")
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		ext := "mp4"
		if *rawPtr {
			ext = "yuy2"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("composite_%s.%s", timestamp, ext))
	}

	var sink engine.Sink
	if *rawPtr || strings.HasSuffix(finalOutput, ".yuy2") {
		sink, err = video.NewRawSink(finalOutput)
	} else {
		encoderName := system.BestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
		}
		quality := *qualityPtr
		if quality == 0 {
			switch encoderName {
			case "h264_videotoolbox":
				quality = 75
			case "h264_nvenc":
				quality = 28
			default:
				quality = 23
			}
		}
		sink, err = video.NewFFmpegSink(finalOutput, width, height, *fpsPtr, encoderName, quality)
	}
	if err != nil {
		log.Fatalf("[-] Sink error: %v", err)
	}

	fmt.Println("--- [COMPOSITE] ---")
	fmt.Printf("[*] Output: %dx%d @ %d FPS | normalized %dx%d | aspect %.3f\n",
		width, height, *fpsPtr, normWidth, normHeight, aspect)
	fmt.Printf("[*] Transition: %s -> %s | window %d..%d\n", tc.Start, tc.End, tc.Window.In, tc.Window.Out)
	fmt.Println("-------------------")

	var stats *system.Stats
	if *statsPtr {
		stats = system.StartStats()
	}

	runner := &engine.Runner{
		Transition: transition.New(tc, normWidth, normHeight, aspect),
		Background: bg,
		Overlay:    overlay,
		Sink:       sink,
		Frames:     frames,
		Workers:    *workersPtr,
	}
	if err := runner.Run(context.Background()); err != nil {
		log.Fatalf("[-] Render error: %v", err)
	}

	if stats != nil {
		stats.Report(frames)
	}
	fmt.Printf("[+] Done: %s\n", finalOutput)
}

func buildBackground(spec string, width, height int, interlaced bool) (transition.Source, error) {
	if spec == "" {
		return &source.Solid{W: width, H: height, Luma: 128, Chroma: 128, Interlaced: interlaced}, nil
	}
	src, err := source.NewImageSource(spec)
	if err != nil {
		return nil, err
	}
	src.W, src.H = width, height
	src.Interlaced = interlaced
	return src, nil
}

func buildOverlay(spec string, page, dpi int) (transition.Source, error) {
	switch {
	case spec == "":
		return nil, nil
	case strings.HasPrefix(spec, "qr:"):
		src, err := source.NewQRSource(strings.TrimPrefix(spec, "qr:"), 256)
		if err != nil {
			return nil, err
		}
		return src, nil
	case strings.HasSuffix(strings.ToLower(spec), ".pdf"):
		src, err := source.NewPDFSource(spec, page, dpi)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		src, err := source.NewImageSource(spec)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}
