package debug

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot 节点电压曲线静态图（SVG/PNG/PDF）
type Plot struct {
	Record
	Width  vg.Length // 默认 8 英寸
	Height vg.Length // 默认 5 英寸
}

func (p *Plot) size() (vg.Length, vg.Length) {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = 8 * vg.Inch
	}
	if h <= 0 {
		h = 5 * vg.Inch
	}
	return w, h
}

// build 生成节点电压图
func (p *Plot) build() (*plot.Plot, error) {
	if p.Len() == 0 {
		return nil, ErrEmpty
	}
	pl := plot.New()
	pl.Title.Text = "Node voltage"
	pl.X.Label.Text = "t (s)"
	pl.Y.Label.Text = "V"
	pl.Add(plotter.NewGrid())
	for i := range p.Voltage[0] {
		pts := make(plotter.XYs, len(p.Time))
		for k, t := range p.Time {
			pts[k].X = t
			pts[k].Y = p.Voltage[k][i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("debug: node %d: %w", i, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		pl.Add(line)
		pl.Legend.Add(fmt.Sprintf("Node(%d)", i), line)
	}
	return pl, nil
}

// Render 以SVG格式输出
func (p *Plot) Render(w io.Writer) error {
	pl, err := p.build()
	if err != nil {
		return err
	}
	width, height := p.size()
	wt, err := pl.WriterTo(width, height, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save 保存到文件，格式由扩展名决定
func (p *Plot) Save(filename string) error {
	pl, err := p.build()
	if err != nil {
		return err
	}
	width, height := p.size()
	return pl.Save(width, height, filename)
}
