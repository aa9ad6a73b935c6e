package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"circuitlu"
	"circuitlu/element"
	"circuitlu/mna"
	"circuitlu/mna/debug"
)

func main() {
	config := circuitlu.DefaultConfig()
	netlist := flag.String("netlist", "", "网表文件，为空时使用内置RC电路")
	html := flag.String("html", "circuit.html", "曲线网页输出文件")
	svg := flag.String("svg", "circuit.svg", "电压曲线SVG输出文件")
	addr := flag.String("http", "", "发布曲线网页的地址，如 :8080")
	flag.Float64Var(&config.EndTime, "end", 5e-3, "仿真结束时间")
	flag.Float64Var(&config.TimeStep, "step", 1e-5, "时间步长")
	flag.BoolVar(&config.IsTrapezoidal, "trap", false, "使用梯形积分")
	flag.BoolVar(&config.Verbose, "v", false, "输出求解日志")
	flag.Float64Var(&config.ResidualTol, "residual", 0, "残差容差，0为不校验")
	flag.Parse()

	cir, err := load(*netlist)
	if err != nil {
		log.Fatalf("加载电路失败: %s", err)
	}
	charts := &debug.Charts{}
	m, err := cir.Simulate(config, func(m *mna.MNA) {
		m.Debug = charts
	})
	if err != nil {
		log.Fatalf("仿真失败: %s", err)
	}
	stats := m.Solver().Stats()
	log.Printf("仿真完成: %d 步，分解 %d 次，行交换 %d 次，主元钳位 %d 次",
		charts.Len(), stats.Factorizations, stats.Swaps, stats.ClampedPivots)
	for i := 0; i < m.NodesNum; i++ {
		log.Printf("Node(%d) = %.6g V", i, m.GetNodeVoltage(i))
	}

	if *html != "" {
		file, err := os.Create(*html)
		if err != nil {
			log.Fatal(err)
		}
		if err := charts.Render(file); err != nil {
			log.Fatal(err)
		}
		file.Close()
	}
	if *svg != "" {
		plot := &debug.Plot{Record: charts.Record}
		if err := plot.Save(*svg); err != nil {
			log.Fatal(err)
		}
	}
	if *addr != "" {
		http.HandleFunc("/", charts.Handler)
		log.Printf("曲线网页: http://%s/", *addr)
		log.Fatal(http.ListenAndServe(*addr, nil))
	}
}

// load 加载网表，为空时构建 5V 电源经 1kΩ 对 1µF 电容充电，2.5ms 时开关接入 1kΩ 负载
func load(netlist string) (*circuitlu.Circuit, error) {
	if netlist != "" {
		return circuitlu.LoadFile(netlist)
	}
	cir := circuitlu.NewCircuit(3)
	err := cir.Add(
		element.NewVoltageSource(0, mna.Gnd, 5),
		element.NewResistor(0, 1, 1000),
		element.NewCapacitor(1, mna.Gnd, 1e-6),
		element.NewSwitch(1, 2, 2.5e-3),
		element.NewResistor(2, mna.Gnd, 1000),
	)
	return cir, err
}
