// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package grapher renders function plots as character grids for
// terminal output.
package grapher

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/asiyen02/cas/internal/ast"
	"github.com/asiyen02/cas/internal/parser"
)

// PlotSettings controls the plot window and rendering characters.
type PlotSettings struct {
	XMin, XMax float64
	YMin, YMax float64
	Width      int
	Height     int
	ShowGrid   bool
	ShowAxes   bool
	GridChar   byte
	AxesChar   byte
	FuncChar   byte
}

// DefaultSettings returns a 80x24 window over [-10, 10] in both axes.
func DefaultSettings() PlotSettings {
	return PlotSettings{
		XMin: -10, XMax: 10,
		YMin: -10, YMax: 10,
		Width:    80,
		Height:   24,
		ShowGrid: true,
		ShowAxes: true,
		GridChar: '.',
		AxesChar: '+',
		FuncChar: '*',
	}
}

// Function is a parsed expression registered for plotting.
type Function struct {
	Source string
	Name   string
	Symbol byte
	Node   ast.Node
}

// Console plots functions of x into a character buffer.
type Console struct {
	settings PlotSettings
	funcs    []Function
	buf      [][]byte
}

// New creates a Console with the given settings.
func New(settings PlotSettings) *Console {
	c := &Console{settings: settings}
	c.clearBuffer()
	return c
}

// AddFunction parses source and registers it for plotting. A zero
// symbol falls back to the settings function character.
func (c *Console) AddFunction(source, name string, symbol byte) error {
	node, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("parsing function %q: %w", source, err)
	}
	if symbol == 0 {
		symbol = c.settings.FuncChar
	}
	c.funcs = append(c.funcs, Function{
		Source: source,
		Name:   name,
		Symbol: symbol,
		Node:   node,
	})
	return nil
}

// ClearFunctions removes all registered functions.
func (c *Console) ClearFunctions() {
	c.funcs = nil
}

// SetRange updates the world coordinate window.
func (c *Console) SetRange(xMin, xMax, yMin, yMax float64) {
	c.settings.XMin = xMin
	c.settings.XMax = xMax
	c.settings.YMin = yMin
	c.settings.YMax = yMax
}

// SetSize updates the character grid dimensions.
func (c *Console) SetSize(width, height int) {
	c.settings.Width = width
	c.settings.Height = height
	c.clearBuffer()
}

// Settings returns the current plot settings.
func (c *Console) Settings() PlotSettings {
	return c.settings
}

// Render draws all registered functions and returns the plot as a
// newline-terminated string.
func (c *Console) Render() string {
	c.clearBuffer()

	if c.settings.ShowGrid {
		c.drawGrid()
	}
	if c.settings.ShowAxes {
		c.drawAxes()
	}
	for _, f := range c.funcs {
		c.drawFunction(f)
	}
	c.drawLabels()

	var b strings.Builder
	for _, row := range c.buf {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Plot renders and writes the plot to w.
func (c *Console) Plot(w io.Writer) error {
	_, err := io.WriteString(w, c.Render())
	return err
}

func (c *Console) worldXToScreen(x float64) int {
	return int((x - c.settings.XMin) * float64(c.settings.Width) / (c.settings.XMax - c.settings.XMin))
}

func (c *Console) worldYToScreen(y float64) int {
	return int((c.settings.YMax - y) * float64(c.settings.Height) / (c.settings.YMax - c.settings.YMin))
}

func (c *Console) clearBuffer() {
	c.buf = make([][]byte, c.settings.Height)
	for i := range c.buf {
		row := make([]byte, c.settings.Width)
		for j := range row {
			row[j] = ' '
		}
		c.buf[i] = row
	}
}

// drawGrid marks each integer world coordinate line, skipping the
// axes so they stay visible.
func (c *Console) drawGrid() {
	for x := int(c.settings.XMin); x <= int(c.settings.XMax); x++ {
		if x == 0 {
			continue
		}
		sx := c.worldXToScreen(float64(x))
		if sx < 0 || sx >= c.settings.Width {
			continue
		}
		for y := 0; y < c.settings.Height; y++ {
			c.buf[y][sx] = c.settings.GridChar
		}
	}

	for y := int(c.settings.YMin); y <= int(c.settings.YMax); y++ {
		if y == 0 {
			continue
		}
		sy := c.worldYToScreen(float64(y))
		if sy < 0 || sy >= c.settings.Height {
			continue
		}
		for x := 0; x < c.settings.Width; x++ {
			c.buf[sy][x] = c.settings.GridChar
		}
	}
}

func (c *Console) drawAxes() {
	sy := c.worldYToScreen(0)
	if sy >= 0 && sy < c.settings.Height {
		for x := 0; x < c.settings.Width; x++ {
			c.buf[sy][x] = c.settings.AxesChar
		}
	}

	sx := c.worldXToScreen(0)
	if sx >= 0 && sx < c.settings.Width {
		for y := 0; y < c.settings.Height; y++ {
			c.buf[y][sx] = c.settings.AxesChar
		}
	}
}

// drawFunction samples one point per column. Points outside the y
// range, non-finite values, and evaluation errors are skipped.
func (c *Console) drawFunction(f Function) {
	if f.Node == nil {
		return
	}

	step := (c.settings.XMax - c.settings.XMin) / float64(c.settings.Width)
	for i := 0; i <= c.settings.Width; i++ {
		x := c.settings.XMin + float64(i)*step

		y, err := f.Node.Eval(map[string]float64{"x": x})
		if err != nil {
			continue
		}
		if y < c.settings.YMin || y > c.settings.YMax || math.IsInf(y, 0) || math.IsNaN(y) {
			continue
		}

		sx := c.worldXToScreen(x)
		sy := c.worldYToScreen(y)
		if sx >= 0 && sx < c.settings.Width && sy >= 0 && sy < c.settings.Height {
			c.buf[sy][sx] = f.Symbol
		}
	}
}

// drawLabels writes named function legends on the top row.
func (c *Console) drawLabels() {
	for i, f := range c.funcs {
		if i >= 5 || f.Name == "" {
			continue
		}
		label := string(f.Symbol) + ": " + f.Name
		if len(label) >= c.settings.Width {
			continue
		}
		copy(c.buf[0], label)
	}
}

// AutoRange samples n over [xMin, xMax] and returns a y range padded
// by 15% of the span, with a minimum padding of 1.0. Returns false
// when no sample yields a finite value.
func AutoRange(n ast.Node, xMin, xMax float64) (yMin, yMax float64, ok bool) {
	const samples = 100

	minY := math.Inf(1)
	maxY := math.Inf(-1)

	for i := 0; i <= samples; i++ {
		x := xMin + (xMax-xMin)*(float64(i)/samples)
		y, err := n.Eval(map[string]float64{"x": x})
		if err != nil || !finite(y) {
			continue
		}
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	if !finite(minY) || !finite(maxY) {
		return 0, 0, false
	}

	padding := (maxY - minY) * 0.15
	if padding < 1.0 {
		padding = 1.0
	}
	return minY - padding, maxY + padding, true
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
