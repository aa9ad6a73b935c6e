package debug

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	Record
}

// newLine 创建统一样式的曲线图
func newLine(title, subtitle string, xAxis []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	line.SetXAxis(xAxis)
	return line
}

// addColumns 将按时间步记录的行数据按列拆分为曲线
func addColumns(line *charts.Line, rows [][]float64, name func(i int) string) {
	if len(rows) == 0 {
		return
	}
	for i := range rows[0] {
		items := make([]opts.LineData, len(rows))
		for x, row := range rows {
			items[x].Value = row[i]
		}
		line.AddSeries(name(i), items)
	}
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	if c.Len() == 0 {
		return ErrEmpty
	}
	xAxis := make([]string, len(c.Time))
	for i, t := range c.Time {
		xAxis[i] = strconv.FormatFloat(t, 'g', 6, 64)
	}
	// 电压信息
	lineV := newLine("电压曲线", "电路节点电压随时间变化曲线", xAxis)
	addColumns(lineV, c.Voltage, func(i int) string { return fmt.Sprintf("Node(%d)", i) })
	// 电流信息
	lineA := newLine("电流曲线", "电压源电流随时间变化曲线", xAxis)
	addColumns(lineA, c.Current, func(i int) string { return c.CurrentStr[i] })
	// 激励信息
	lineI := newLine("激励曲线", "右侧激励向量随时间变化曲线", xAxis)
	addColumns(lineI, c.Incentive, func(i int) string { return strconv.Itoa(i) })
	// 求解信息
	lineS := newLine("求解信息", fmt.Sprintf("分解 %d 次，行交换 %d 次，主元钳位 %d 次", c.Factorize, c.Swaps, c.Clamped), xAxis)
	residual := make([]opts.LineData, len(c.Residual))
	frontier := make([]opts.LineData, len(c.Frontier))
	for i, r := range c.Residual {
		residual[i].Value = r
	}
	for i, f := range c.Frontier {
		frontier[i].Value = f
	}
	lineS.AddSeries("残差", residual).AddSeries("分解前沿", frontier)
	// 构建界面
	page := components.NewPage()
	page.AddCharts(
		lineV,
		lineA,
		lineI,
		lineS,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
