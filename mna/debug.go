package mna

import (
	"io"
	"log"
)

// Debug 调试接口，时间循环在每步求解后调用 Update
type Debug interface {
	Init(mna *MNA)            // 仿真开始前调用一次
	IsDebug() bool            // 是否记录数据
	Update(mna *MNA)          // 每个时间步求解完成后调用
	Render(w io.Writer) error // 输出记录
	Error(err error)          // 仿真错误
}

// debug 默认调试器，不记录任何数据
type debug struct{}

func (debug) Init(mna *MNA)            {}
func (debug) IsDebug() bool            { return false }
func (debug) Update(mna *MNA)          {}
func (debug) Render(w io.Writer) error { return nil }
func (debug) Error(err error)          { log.Println(err) }
