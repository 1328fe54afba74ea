package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/iconforge/iconforge"
	"github.com/iconforge/iconforge/utils"
)

const HelpBanner = `
┬┌─┐┌─┐┌┐┌┌─┐┌─┐┬─┐┌─┐┌─┐
││  │ ││││├┤ │ │├┬┘│ ┬├┤
┴└─┘└─┘┘└┘└  └─┘┴└─└─┘└─┘

Icon bundle rendering and export tool.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source icon (SVG or bitmap file)")
	destination = flag.String("out", pipeName, "Destination file")
	iconColor   = flag.String("color", "#ffffff", "Icon color")
	background  = flag.String("bg", "#063940", "Background color")
	gradient    = flag.String("gradient", "", "Named background gradient preset")
	iconSize    = flag.Float64("size", 0, "Logical icon size on the canvas")
	padding     = flag.Float64("padding", 0, "Canvas padding in pixels")
	outputSize  = flag.Int("output", 320, "Output canvas size in pixels")
	format      = flag.String("format", "png", "Output format: png|jpeg|webp|svg|ico")
	quality     = flag.Int("quality", 0, "Quality for lossy formats (1-100)")
	chrome      = flag.Bool("chrome", false, "Chrome mode: no background, theme token preserved")
	preset      = flag.String("preset", "", "Export a whole preset bundle: marketplace|favicon")
	noColors    = flag.Bool("nocolors", false, "Disable colored terminal output")

	spinner *utils.Spinner
)

// supportedFormats lists the encodable output formats.
var supportedFormats = []string{"png", "jpeg", "webp", "svg", "ico"}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if !utils.Contains(supportedFormats, *format) {
		log.Fatalf(utils.DecorateText("Unsupported output format %q\n", utils.ErrorMessage), *format)
	}

	def, err := loadIcon(*source)
	if err != nil {
		log.Fatalf(utils.DecorateText("Failed to load the source icon: %v\n", utils.ErrorMessage), err)
	}

	bg := iconforge.Solid(*background)
	if *gradient != "" {
		g, ok := iconforge.GradientPresets[*gradient]
		if !ok {
			log.Fatalf(utils.DecorateText("Unknown gradient preset %q\n", utils.ErrorMessage), *gradient)
		}
		bg = iconforge.WithGradient(g)
	}

	req := iconforge.RenderRequest{
		Icon:       def,
		Background: bg,
		IconColor:  *iconColor,
		IconSize:   *iconSize,
		Padding:    *padding,
		OutputSize: *outputSize,
		ChromeMode: *chrome,
	}

	renderer := iconforge.NewRenderer(nil)

	spinnerText := fmt.Sprintf("%s %s",
		decorate("⚡ ICONFORGE", utils.StatusMessage),
		decorate("is rendering the icon...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	now := time.Now()
	if *preset != "" {
		exportPreset(renderer, req)
	} else {
		renderSingle(renderer, req)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		decorate(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// renderSingle renders one file in the requested format.
func renderSingle(r *iconforge.Renderer, req iconforge.RenderRequest) {
	startSpinner()
	buf, err := r.Render(req, iconforge.Format(*format), *quality)
	stopSpinner()

	if err != nil {
		log.Fatalf(utils.DecorateText("Rendering failed: %v\n", utils.ErrorMessage), err)
	}
	if err := writeOutput(*destination, buf); err != nil {
		log.Fatalf(utils.DecorateText("Unable to write the output: %v\n", utils.ErrorMessage), err)
	}
	printStatus(*destination, len(buf))
}

// exportPreset resolves a whole preset bundle into a zip archive.
func exportPreset(r *iconforge.Renderer, req iconforge.RenderRequest) {
	p, err := iconforge.FindPreset(*preset)
	if err != nil {
		log.Fatalf(utils.DecorateText("Unknown preset %q\n", utils.ErrorMessage), *preset)
	}
	spinner.SetMessage(fmt.Sprintf("%s %s",
		decorate("⚡ ICONFORGE", utils.StatusMessage),
		decorate(fmt.Sprintf("is exporting the %s bundle...", p.ID), utils.DefaultMessage)))

	state := iconforge.ExportState{Request: &req}
	plan, err := iconforge.PlanExport(p, state.Kind(nil))
	if err != nil {
		log.Fatalf(utils.DecorateText("Export planning failed: %v\n", utils.ErrorMessage), err)
	}

	startSpinner()
	res, err := r.ResolveExport(plan, state)
	stopSpinner()

	if err != nil {
		log.Fatalf(utils.DecorateText("Export failed: %v\n", utils.ErrorMessage), err)
	}

	for _, f := range res.Files {
		fmt.Fprintf(os.Stderr, "%s %s (%s)\n",
			decorate("✔", utils.SuccessMessage), f.Name, utils.FormatBytes(len(f.Data)))
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "%s %s skipped: %s\n",
			decorate("–", utils.StatusMessage), s.Variant.Filename, s.Reason)
	}
	for _, f := range res.Failed {
		fmt.Fprintf(os.Stderr, "%s %s failed: %v\n",
			decorate("✘", utils.ErrorMessage), f.Variant.Filename, f.Err)
	}

	out := *destination
	if out == pipeName && term.IsTerminal(int(os.Stdout.Fd())) {
		out = *preset + ".zip"
	}
	if err := writeOutput(out, res.Archive); err != nil {
		log.Fatalf(utils.DecorateText("Unable to write the archive: %v\n", utils.ErrorMessage), err)
	}
	printStatus(out, len(res.Archive))
}

// loadIcon reads the source icon from a file or stdin and classifies it as
// vector markup or a pre-baked bitmap.
func loadIcon(src string) (*iconforge.IconDefinition, error) {
	var (
		data []byte
		err  error
	)
	if src == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("no input file and stdin is a terminal")
		}
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	def := &iconforge.IconDefinition{
		ID:                 src,
		AllowColorOverride: true,
	}

	// Bitmap formats sniff cleanly; SVG falls through to the markup check
	// because the stdlib sniffer has no entry for it.
	ct, err := utils.DetectContentType(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(ct, "image/") {
		def.IsRasterized = true
		def.Raster = data
		return def, nil
	}

	if strings.Contains(string(data[:min(len(data), 512)]), "<svg") {
		def.Markup = string(data)
		if vb, ok := iconforge.ParseViewBox(def.Markup); ok {
			def.View = vb
		} else {
			def.View = iconforge.ViewBox{W: 24, H: 24}
		}
		return def, nil
	}
	return nil, fmt.Errorf("unrecognized source format %q", ct)
}

// writeOutput stores the rendered bytes into the destination file or pipes
// them to stdout.
func writeOutput(dst string, data []byte) error {
	if dst == pipeName {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func printStatus(path string, size int) {
	name := path
	if name == pipeName {
		name = "stdout"
	}
	fmt.Fprintf(os.Stderr, "\nSaved %s as %s\n",
		decorate(utils.FormatBytes(size), utils.SuccessMessage),
		decorate(name, utils.SuccessMessage))
}

func startSpinner() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spinner.Start()
	}
}

func stopSpinner() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spinner.Stop()
	}
}

// decorate applies terminal colors unless they are disabled.
func decorate(s string, msgType utils.MessageType) string {
	if *noColors {
		return s
	}
	return utils.DecorateText(s, msgType)
}
