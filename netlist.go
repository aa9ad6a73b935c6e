package circuitlu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"circuitlu/element"
	"circuitlu/mna"
)

// 网表格式，每行一个元件，# 开头为注释，. 开头的指令忽略：
//
//	R1 n1 n2 电阻
//	C1 n1 n2 电容 [初始电压]
//	L1 n1 n2 电感 [初始电流]
//	V1 n+ n- 幅值 [波形 频率 偏置 相位 占空比]
//	I1 n1 n2 电流
//	S1 n1 n2 闭合时间 [断开时间 导通电阻 关断电阻]
//	E1 o+ o- c+ c- 增益
//	G1 o+ o- c+ c- 增益
//
// 节点 -1 为地，节点数量为最大节点编号加一。

// pinCount 元件类型对应的引脚数量
var pinCount = map[string]int{
	"R": 2, "C": 2, "L": 2, "V": 2, "I": 2, "S": 2,
	"E": 4, "G": 4,
}

// NetList 元件值字段
type NetList []string

// ParseFloat 解析第i个值，缺省时返回 defaultValue
func (value NetList) ParseFloat(i int, defaultValue float64) (float64, error) {
	if i >= len(value) {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value[i], 64)
	if err != nil {
		return 0, fmt.Errorf("值 %q 无效: %w", value[i], err)
	}
	return v, nil
}

// LoadFile 从文件加载网表
func LoadFile(filename string) (*Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load 加载 netlist 格式数据
func Load(r io.Reader) (*Circuit, error) {
	type entry struct {
		line   int
		typ    string
		pins   []mna.NodeID
		values NetList
	}
	var entries []entry
	maxNode := mna.Gnd
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || line[0] == '.' {
			continue
		}
		fields := strings.Fields(line)
		// 解析类型名
		typ := strings.ToUpper(strings.TrimRightFunc(fields[0], unicode.IsNumber))
		n, ok := pinCount[typ]
		if !ok {
			return nil, fmt.Errorf("第 %d 行: 未知的元件类型 '%s'", lineNum, fields[0])
		}
		if len(fields) < n+2 {
			return nil, fmt.Errorf("第 %d 行: 元件 '%s' 参数不足", lineNum, fields[0])
		}
		// 处理引脚
		e := entry{line: lineNum, typ: typ, pins: make([]mna.NodeID, n), values: fields[n+1:]}
		for i := range e.pins {
			id, err := strconv.Atoi(fields[i+1])
			if err != nil || id < mna.Gnd {
				return nil, fmt.Errorf("第 %d 行: 引脚 %d 的节点ID无效 '%s'", lineNum, i, fields[i+1])
			}
			e.pins[i] = id
			maxNode = max(maxNode, id)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取网表时出错: %w", err)
	}
	cir := NewCircuit(maxNode + 1)
	for _, e := range entries {
		ele, err := newElement(e.typ, e.pins, e.values)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", e.line, err)
		}
		if err := cir.Add(ele); err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", e.line, err)
		}
	}
	return cir, nil
}

// newElement 根据类型名与值创建元件
func newElement(typ string, p []mna.NodeID, values NetList) (element.Element, error) {
	var v [6]float64
	defaults := map[string][6]float64{
		"V": {0, 0, 0, 0, 0, 0.5},
		"S": {0, 0, 1e-3, 1e9},
	}[typ]
	for i := range v {
		f, err := values.ParseFloat(i, defaults[i])
		if err != nil {
			return nil, err
		}
		v[i] = f
	}
	switch typ {
	case "R":
		return element.NewResistor(p[0], p[1], v[0]), nil
	case "C":
		if v[0] <= 0 {
			return nil, fmt.Errorf("电容值必须为正: %g", v[0])
		}
		c := element.NewCapacitor(p[0], p[1], v[0])
		c.InitialVoltage = v[1]
		return c, nil
	case "L":
		if v[0] <= 0 {
			return nil, fmt.Errorf("电感值必须为正: %g", v[0])
		}
		l := element.NewInductor(p[0], p[1], v[0])
		l.InitialCurrent = v[1]
		return l, nil
	case "V":
		s := element.NewVoltageSource(p[0], p[1], v[0])
		s.Waveform = element.Waveform(v[1])
		s.Frequency, s.Bias, s.Phase, s.DutyCycle = v[2], v[3], v[4], v[5]
		return s, nil
	case "I":
		return element.NewCurrentSource(p[0], p[1], v[0]), nil
	case "S":
		s := element.NewSwitch(p[0], p[1], v[0])
		s.OffTime, s.OnResistance, s.OffResistance = v[1], v[2], v[3]
		return s, nil
	case "E":
		return element.NewVCVS(p[0], p[1], p[2], p[3], v[0]), nil
	case "G":
		return element.NewVCCS(p[0], p[1], p[2], p[3], v[0]), nil
	}
	return nil, fmt.Errorf("未知的元件类型 '%s'", typ)
}

// Export 导出 netlist 格式数据
func (cir *Circuit) Export(w io.Writer) error {
	writer := bufio.NewWriter(w)
	for id, ele := range cir.Elements {
		fmt.Fprintf(writer, "%s%d", ele.Type(), id+1)
		for _, n := range ele.Nodes() {
			fmt.Fprintf(writer, " %d", n)
		}
		var values []float64
		switch e := ele.(type) {
		case *element.Resistor:
			values = []float64{e.Resistance}
		case *element.Capacitor:
			values = []float64{e.Capacitance, e.InitialVoltage}
		case *element.Inductor:
			values = []float64{e.Inductance, e.InitialCurrent}
		case *element.VoltageSource:
			values = []float64{e.MaxVoltage, float64(e.Waveform), e.Frequency, e.Bias, e.Phase, e.DutyCycle}
		case *element.CurrentSource:
			values = []float64{e.Value}
		case *element.Switch:
			values = []float64{e.OnTime, e.OffTime, e.OnResistance, e.OffResistance}
		case *element.VCVS:
			values = []float64{e.Gain}
		case *element.VCCS:
			values = []float64{e.Gain}
		}
		for _, v := range values {
			writer.WriteByte(' ')
			writer.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		writer.WriteByte('\n')
	}
	return writer.Flush()
}
