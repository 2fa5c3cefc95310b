//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"anchorkit/internal/config"
	"anchorkit/internal/crash"
	"anchorkit/internal/domain"
	"anchorkit/internal/export"
	"anchorkit/internal/floating"
	"anchorkit/internal/geom"
	applog "anchorkit/internal/log"
	"anchorkit/internal/platform"
	"anchorkit/internal/position"
	"anchorkit/internal/profile"
	"anchorkit/internal/storage"
	"anchorkit/internal/trace"
	"anchorkit/internal/undo"
	"anchorkit/internal/version"
)

// Run starts the Fyne-based playground: a scrollable arrangement surface with
// a draggable anchor, a positioned popover, a pointer-anchored context menu,
// and controls for every placement option. Pass an optional corpus directory
// to open immediately.
func Run(corpusDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting playground")

	var h *storage.CorpusHandle
	var rec *trace.Recorder
	defer func() { crash.Recover(h, rec) }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, continuing with defaults", slog.Any("err", err))
	}

	fyneApp := app.NewWithID("anchorkit")
	applyConfigTheme(fyneApp, cfg.General.Theme)
	w := fyneApp.NewWindow("AnchorKit Playground")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 760)
	if winW < 820 {
		winW = 820
	}
	if winH < 560 {
		winH = 560
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	plat := NewCanvasPlatform(w.Canvas())
	pg := NewPlaygroundCanvas(geom.Size{W: 1600, H: 1100})
	pg.SetSnap(true, cfg.Position.SnapThreshold)
	pg.SetShowGuides(cfg.Position.ShowGuides)

	scroll := container.NewScroll(pg)
	layer := NewFloatLayer()
	surface := newPopoverSurface()
	menuSurface := newMenuSurface()
	layer.Attach(surface)
	layer.Attach(menuSurface)

	// Trace bookkeeping: the shell knows what caused an update, the
	// controller only reports the outcome.
	lastTrigger := trace.TriggerMount
	tickStart := time.Now()
	recordTick := func(surfaceName string, st floating.State) {
		if rec == nil || !st.Positioned {
			return
		}
		tick := trace.Tick{
			At:       time.Now(),
			Surface:  surfaceName,
			Trigger:  lastTrigger,
			Result:   st.Result,
			Duration: time.Since(tickStart),
		}
		if err := rec.Record(context.Background(), tick); err != nil {
			l.Warn("trace record failed", slog.Any("err", err))
		}
	}

	// Placement controls. rebuild is assigned once the controller exists;
	// until then changing a control only changes the control.
	var rebuild func()
	onControl := func(string) {
		if rebuild != nil {
			rebuild()
		}
	}
	profileSel := widget.NewSelect(profile.Names(), nil)
	sideSel := widget.NewSelect([]string{"bottom", "top", "right", "left"}, onControl)
	alignSel := widget.NewSelect([]string{"center", "start", "end"}, onControl)
	stickySel := widget.NewSelect([]string{"partial", "always", "never"}, onControl)
	offsetSlider := widget.NewSlider(0, 24)
	offsetSlider.Step = 1
	offsetSlider.OnChanged = func(float64) { onControl("") }
	avoidCheck := widget.NewCheck("Avoid collisions", func(bool) { onControl("") })
	constrainCheck := widget.NewCheck("Constrain size", func(bool) { onControl("") })
	hideDetachedCheck := widget.NewCheck("Hide when detached", func(bool) { onControl("") })

	// profileOpts carries the parts of the resolved profile the controls do
	// not surface (padding, minimum sizes, align offset).
	profileOpts := floating.Options{}
	currentOpts := func() floating.Options {
		o := profileOpts
		o.Boundary = []platform.Element{scroll}
		if s, err := position.ParseSide(sideSel.Selected); err == nil {
			o.Side = s
		}
		if a, err := position.ParseAlign(alignSel.Selected); err == nil {
			o.Align = a
		}
		if st, err := position.ParseSticky(stickySel.Selected); err == nil {
			o.Sticky = st
		}
		o.SideOffset = float32(offsetSlider.Value)
		o.DisableCollisionAvoidance = !avoidCheck.Checked
		o.ConstrainSize = constrainCheck.Checked
		o.HideWhenDetached = hideDetachedCheck.Checked
		return o
	}
	applyProfile := func(name string) {
		profileOpts = profile.Resolve(name)
		sideSel.SetSelected(profileOpts.Side.String())
		alignSel.SetSelected(profileOpts.Align.String())
		stickySel.SetSelected(profileOpts.Sticky.String())
		offsetSlider.SetValue(float64(profileOpts.SideOffset))
		avoidCheck.SetChecked(!profileOpts.DisableCollisionAvoidance)
		constrainCheck.SetChecked(profileOpts.ConstrainSize)
		hideDetachedCheck.SetChecked(profileOpts.HideWhenDetached)
	}
	profileSel.OnChanged = func(name string) {
		applyProfile(name)
		if rebuild != nil {
			rebuild()
		}
	}
	profileSel.SetSelected(prefs.StringWithFallback("position.profile", cfg.Position.Profile))

	ctl := floating.NewController(plat, floating.AnchorTo(pg.AnchorObject()), surface, currentOpts(), func(st floating.State) {
		layer.Apply(surface, st)
		recordTick("popover", st)
		if !st.Positioned {
			status.SetText("Surface not positioned")
			return
		}
		res := st.Result
		txt := fmt.Sprintf("%s %s at (%.0f, %.0f)", res.Side, res.Align, res.Left, res.Top)
		if res.HasMaxHeight {
			txt += fmt.Sprintf(", max height %.0f", res.MaxHeight)
		}
		if res.HasMaxWidth {
			txt += fmt.Sprintf(", max width %.0f", res.MaxWidth)
		}
		if res.ReferenceHidden {
			txt += ", anchor out of view"
		}
		if !st.Visible {
			txt += " (hidden)"
		}
		status.SetText(txt)
	})
	rebuild = func() {
		lastTrigger = trace.TriggerManual
		tickStart = time.Now()
		ctl.SetOptions(currentOpts())
		ctl.Update(true)
	}

	menuOpts := profile.Resolve("context-menu")
	menuCtl := floating.NewController(plat, floating.AnchorAt(geom.Pt{}), menuSurface, menuOpts, func(st floating.State) {
		layer.Apply(menuSurface, st)
		recordTick("context-menu", st)
	})

	// Undo covers the arrangement only; each completed drag pushes the state
	// the drag started from.
	undoMgr := undo.NewManager(undo.Config{
		MaxBytes:      8 * 1024 * 1024,
		MaxPerSurface: 50,
		MinInterval:   250 * time.Millisecond,
	})
	const arrangeKey = "playground"
	captureArrangement := func() []byte {
		b, _ := json.Marshal(arrangement{Anchor: pg.AnchorRect()})
		return b
	}
	lastArrangement := captureArrangement()
	applyArrangement := func(blob []byte) {
		var a arrangement
		if err := json.Unmarshal(blob, &a); err != nil {
			l.Warn("arrangement snapshot unreadable", slog.Any("err", err))
			return
		}
		pg.SetAnchorRect(a.Anchor)
		lastArrangement = blob
		lastTrigger = trace.TriggerManual
		tickStart = time.Now()
		ctl.Update(false)
	}

	pg.OnAnchorMoved = func(_ geom.Rect, done bool) {
		lastTrigger = trace.TriggerDrag
		tickStart = time.Now()
		ctl.Update(false)
		if done {
			undoMgr.Push(undo.Snapshot{Surface: arrangeKey, Blob: lastArrangement, At: time.Now()})
			lastArrangement = captureArrangement()
		}
	}
	pg.OnContextTap = func(at geom.Pt) {
		origin, ok := plat.Measure(pg)
		if !ok {
			return
		}
		lastTrigger = trace.TriggerMount
		tickStart = time.Now()
		menuCtl.SetAnchor(floating.AnchorAt(geom.Pt{X: origin.X + at.X, Y: origin.Y + at.Y}))
		menuCtl.SetRendered(true)
		menuCtl.Update(true)
	}
	pg.OnTap = func() { menuCtl.SetRendered(false) }

	scroll.OnScrolled = func(_ fyne.Position) {
		lastTrigger = trace.TriggerScroll
		tickStart = time.Now()
		plat.NotifyScroll()
	}

	showCheck := widget.NewCheck("Show surface", func(v bool) {
		lastTrigger = trace.TriggerMount
		tickStart = time.Now()
		ctl.SetRendered(v)
	})
	snapCheck := widget.NewCheck("Snap while dragging", func(v bool) {
		pg.SetSnap(v, cfg.Position.SnapThreshold)
	})
	guidesCheck := widget.NewCheck("Show snap guides", func(v bool) {
		pg.SetShowGuides(v)
	})
	traceCheck := widget.NewCheck("Record trace", nil)
	traceCheck.OnChanged = func(v bool) {
		if !v {
			if rec != nil {
				_ = rec.Flush(context.Background())
				if err := rec.Close(); err != nil {
					l.Warn("trace close failed", slog.Any("err", err))
				}
				rec = nil
				status.SetText("Trace recording stopped")
			}
			return
		}
		root := cfg.Trace.Dir
		if strings.TrimSpace(root) == "" && h != nil {
			root = h.Root
		}
		if strings.TrimSpace(root) == "" {
			root = os.TempDir()
		}
		r, err := trace.Open(root)
		if err != nil {
			l.Error("trace open failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			traceCheck.SetChecked(false)
			return
		}
		rec = r
		l.Info("trace recording", slog.String("path", trace.Path(root)))
		status.SetText("Recording to " + trace.Path(root))
	}

	openCorpus := func(dir string) {
		nh, err := storage.Open(dir)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		h = nh
		addRecentCorpus(prefs, dir)
		l.Info("corpus opened", slog.String("root", dir), slog.Int("cases", len(h.Document.Cases)))
		status.SetText(fmt.Sprintf("Corpus %q, %d cases", h.Document.Name, len(h.Document.Cases)))
	}

	captureCase := func() (domain.Case, error) {
		anchor, ok := plat.Measure(pg.AnchorObject())
		if !ok {
			return domain.Case{}, fmt.Errorf("anchor is not measurable")
		}
		natural, ok := plat.NaturalSize(surface)
		if !ok {
			return domain.Case{}, fmt.Errorf("surface is not measurable")
		}
		anchorSpec := rectSpec(anchor)
		c := domain.Case{
			Name:     fmt.Sprintf("playground %s", time.Now().Format("2006-01-02 15:04:05")),
			Viewport: rectSpec(plat.Viewport()),
			Anchor:   &anchorSpec,
			Content:  domain.SizeSpec{Width: float64(natural.W), Height: float64(natural.H)},
			Options:  optionSpec(currentOpts()),
			Notes:    "captured from the playground",
		}
		if b, ok := plat.Measure(scroll); ok {
			c.Boundaries = []domain.RectSpec{rectSpec(b)}
		}
		return c, nil
	}

	// Menus
	openItem := fyne.NewMenuItem("Open Corpus…", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uri == nil {
				return
			}
			openCorpus(uri.Path())
		}, w)
		fd.Show()
	})
	var recentItems []*fyne.MenuItem
	for _, dir := range loadRecentCorpora(prefs) {
		d := dir
		recentItems = append(recentItems, fyne.NewMenuItem(d, func() { openCorpus(d) }))
	}
	if len(recentItems) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		recentItems = append(recentItems, none)
	}
	recentMenu := fyne.NewMenuItem("Open Recent", nil)
	recentMenu.ChildMenu = fyne.NewMenu("", recentItems...)
	newItem := fyne.NewMenuItem("New Corpus…", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uri == nil {
				return
			}
			dir := uri.Path()
			nh, err := storage.InitCorpus(dir, domain.Document{
				SchemaVersion: domain.CurrentSchemaVersion,
				Name:          filepath.Base(dir),
			})
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			h = nh
			addRecentCorpus(prefs, dir)
			status.SetText("New corpus at " + dir)
		}, w)
		fd.Show()
	})
	captureItem := fyne.NewMenuItem("Capture Case", func() {
		if h == nil {
			dialog.ShowInformation("Capture Case", "Open a corpus first.", w)
			return
		}
		c, err := captureCase()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		h.Document.Cases = append(h.Document.Cases, c)
		if err := storage.Save(h); err != nil {
			dialog.ShowError(err, w)
			return
		}
		l.Info("case captured", slog.String("name", c.Name), slog.Int("cases", len(h.Document.Cases)))
		status.SetText(fmt.Sprintf("Captured %q, %d cases total", c.Name, len(h.Document.Cases)))
	})
	runItem := fyne.NewMenuItem("Run Cases", func() {
		if h == nil {
			dialog.ShowInformation("Run Cases", "Open a corpus first.", w)
			return
		}
		pass := 0
		var failures []string
		for _, c := range h.Document.Cases {
			out := domain.Evaluate(c)
			if out.Pass() {
				pass++
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %s", c.Name, strings.Join(out.Failures, "; ")))
		}
		msg := fmt.Sprintf("%d/%d cases pass.", pass, len(h.Document.Cases))
		if len(failures) > 0 {
			msg += "\n\n" + strings.Join(failures, "\n")
		}
		l.Info("cases evaluated", slog.Int("pass", pass), slog.Int("total", len(h.Document.Cases)))
		dialog.ShowInformation("Run Cases", msg, w)
	})

	undoItem := fyne.NewMenuItem("Undo Arrangement", func() {
		if s, ok := undoMgr.Undo(arrangeKey); ok {
			applyArrangement(s.Blob)
		} else {
			status.SetText("Nothing to undo")
		}
	})
	redoItem := fyne.NewMenuItem("Redo Arrangement", func() {
		if s, ok := undoMgr.Redo(arrangeKey); ok {
			applyArrangement(s.Blob)
		} else {
			status.SetText("Nothing to redo")
		}
	})

	exportPDFItem := fyne.NewMenuItem("Export PDF Report…", func() {
		if h == nil {
			dialog.ShowInformation("Export PDF", "Open a corpus first.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := export.ExportCorpusPDF(h.Document, outPath, export.PDFOptions{IncludeGuides: true}); err != nil {
				dialog.ShowError(err, w)
			} else {
				dialog.ShowInformation("Export PDF", "Exported to "+outPath, w)
			}
		}, w)
		save.SetFileName("cases.pdf")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		save.Show()
	})
	exportBundleItem := fyne.NewMenuItem("Export Review Bundle…", func() {
		if h == nil {
			dialog.ShowInformation("Export Bundle", "Open a corpus first.", w)
			return
		}
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			if err := export.ExportCorpusBundle(h.Document, outPath, export.BundleOptions{IncludeGuides: true}); err != nil {
				dialog.ShowError(err, w)
			} else {
				dialog.ShowInformation("Export Bundle", "Exported to "+outPath, w)
			}
		}, w)
		save.SetFileName("report.zip")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
		save.Show()
	})
	exportSVGItem := fyne.NewMenuItem("Render SVG Cases…", func() {
		if h == nil {
			dialog.ShowInformation("Render SVG", "Open a corpus first.", w)
			return
		}
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uri == nil {
				return
			}
			outDir := uri.Path()
			if err := export.ExportCorpusSVG(h.Document, outDir, export.SVGOptions{IncludeGuides: true, IncludeLabels: true}); err != nil {
				dialog.ShowError(err, w)
			} else {
				dialog.ShowInformation("Render SVG", "Rendered cases to "+outDir, w)
			}
		}, w)
		fd.Show()
	})

	summaryItem := fyne.NewMenuItem("Trace Summary", func() {
		if rec == nil {
			dialog.ShowInformation("Trace Summary", "Trace recording is off.", w)
			return
		}
		s, err := rec.Summary(context.Background())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		msg := fmt.Sprintf("%d ticks, %d hidden\nby trigger: %v\nby side: %v\navg duration: %s",
			s.Total, s.Hidden, s.ByTrigger, s.BySide, s.AvgDuration)
		dialog.ShowInformation("Trace Summary", msg, w)
	})

	aboutItem := fyne.NewMenuItem("About AnchorKit", func() {
		exe, _ := os.Executable()
		info := fmt.Sprintf("AnchorKit\nVersion: %s\nOS: %s\nArch: %s\nGo: %s\nExecutable: %s",
			version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), exe)
		dialog.ShowInformation("About", info, w)
	})

	corpusMenu := fyne.NewMenu("Corpus", openItem, recentMenu, newItem, fyne.NewMenuItemSeparator(), captureItem, runItem)
	editMenu := fyne.NewMenu("Edit", undoItem, redoItem)
	exportMenu := fyne.NewMenu("Export", exportPDFItem, exportBundleItem, exportSVGItem)
	traceMenu := fyne.NewMenu("Trace", summaryItem)
	aboutMenu := fyne.NewMenu("About", aboutItem)
	w.SetMainMenu(fyne.NewMainMenu(corpusMenu, editMenu, exportMenu, traceMenu, aboutMenu))

	controls := container.NewVBox(
		widget.NewLabel("Profile"), profileSel,
		widget.NewSeparator(),
		widget.NewLabel("Side"), sideSel,
		widget.NewLabel("Align"), alignSel,
		widget.NewLabel("Sticky"), stickySel,
		widget.NewLabel("Side offset"), offsetSlider,
		avoidCheck,
		constrainCheck,
		hideDetachedCheck,
		widget.NewSeparator(),
		showCheck,
		snapCheck,
		guidesCheck,
		traceCheck,
	)
	content := container.NewBorder(nil, status, nil, controls, scroll)

	relay := &resizeRelay{}
	relay.onChange = func() {
		lastTrigger = trace.TriggerResize
		tickStart = time.Now()
		plat.NotifyResize()
	}
	w.SetContent(container.New(relay, container.NewStack(content, layer.Container)))

	snapCheck.SetChecked(true)
	guidesCheck.SetChecked(cfg.Position.ShowGuides)
	showCheck.SetChecked(true)
	if cfg.Trace.Enabled {
		traceCheck.SetChecked(true)
	}

	if corpusDir != "" {
		openCorpus(corpusDir)
	}

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		prefs.SetString("position.profile", profileSel.Selected)
		if rec != nil {
			_ = rec.Flush(context.Background())
			if err := rec.Close(); err != nil {
				l.Warn("trace close failed", slog.Any("err", err))
			}
			rec = nil
		}
		w.Close()
	})

	w.ShowAndRun()
	return nil
}

// arrangement is the undo snapshot of the playground: just the pieces the
// user can move.
type arrangement struct {
	Anchor geom.Rect `json:"anchor"`
}

func rectSpec(r geom.Rect) domain.RectSpec {
	return domain.RectSpec{Top: float64(r.Y), Left: float64(r.X), Width: float64(r.W), Height: float64(r.H)}
}

// optionSpec serializes controller options into the corpus form. Padding is
// omitted; the playground always runs with the default.
func optionSpec(o floating.Options) domain.OptionSpec {
	spec := domain.OptionSpec{
		Side:          o.Side.String(),
		Align:         o.Align.String(),
		AlignOffset:   float64(o.AlignOffset),
		Sticky:        o.Sticky.String(),
		ConstrainSize: o.ConstrainSize,
		MinWidth:      float64(o.MinWidth),
		MinHeight:     float64(o.MinHeight),
	}
	if o.SideOffset != 0 {
		v := float64(o.SideOffset)
		spec.SideOffset = &v
	}
	if o.DisableCollisionAvoidance {
		avoid := false
		spec.AvoidCollisions = &avoid
	}
	return spec
}

// forcedVariant pins the theme variant regardless of the OS setting.
type forcedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (f *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return f.Theme.Color(name, f.variant)
}

func applyConfigTheme(a fyne.App, name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		a.Settings().SetTheme(&forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	case "dark":
		a.Settings().SetTheme(&forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	}
}

// resizeRelay lays its objects out like a stack and reports container size
// changes, which is the closest thing to a window resize callback the
// toolkit offers.
type resizeRelay struct {
	last     fyne.Size
	onChange func()
}

func (r *resizeRelay) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var minSize fyne.Size
	for _, o := range objects {
		minSize = minSize.Max(o.MinSize())
	}
	return minSize
}

func (r *resizeRelay) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(size)
		o.Move(fyne.NewPos(0, 0))
	}
	if size != r.last {
		r.last = size
		if r.onChange != nil {
			r.onChange()
		}
	}
}

// newPopoverSurface builds the surface the main controller positions: a
// small card with enough content to exercise size constraints.
func newPopoverSurface() fyne.CanvasObject {
	bg := canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 255, A: 255})
	bg.StrokeColor = color.RGBA{R: 30, G: 80, B: 220, A: 255}
	bg.StrokeWidth = 1
	bg.CornerRadius = 6
	body := container.NewVBox(
		widget.NewLabel("Popover"),
		widget.NewSeparator(),
		widget.NewLabel("Drag the anchor and watch the"),
		widget.NewLabel("placement flip near the edges."),
	)
	return container.NewStack(bg, container.NewPadded(body))
}

func newMenuSurface() fyne.CanvasObject {
	bg := canvas.NewRectangle(color.White)
	bg.StrokeColor = color.RGBA{R: 120, G: 128, B: 140, A: 255}
	bg.StrokeWidth = 1
	body := container.NewVBox(
		widget.NewLabel("Context menu"),
		widget.NewSeparator(),
		widget.NewLabel("Cut"),
		widget.NewLabel("Copy"),
		widget.NewLabel("Paste"),
	)
	return container.NewStack(bg, container.NewPadded(body))
}

const recentPrefsKey = "recent.corpora"
const recentMax = 10

func loadRecentCorpora(p fyne.Preferences) []string {
	raw := p.StringWithFallback(recentPrefsKey, "")
	var items []string
	if strings.TrimSpace(raw) != "" {
		var tmp []string
		if err := json.Unmarshal([]byte(raw), &tmp); err == nil {
			items = tmp
		}
	}
	if items == nil {
		items = []string{}
	}
	// Filter out non-existing paths
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := os.Stat(s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func saveRecentCorpora(p fyne.Preferences, items []string) {
	if len(items) > recentMax {
		items = items[:recentMax]
	}
	b, _ := json.Marshal(items)
	p.SetString(recentPrefsKey, string(b))
}

func addRecentCorpus(p fyne.Preferences, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	abs, _ := filepath.Abs(path)
	rec := loadRecentCorpora(p)
	out := make([]string, 0, 1+len(rec))
	out = append(out, abs)
	for _, s := range rec {
		// de-dup (case-insensitive on Windows)
		if strings.EqualFold(s, abs) {
			continue
		}
		out = append(out, s)
	}
	saveRecentCorpora(p, out)
}
