// Package stats 提供统计累加器及其在文件、子类型、语言三个粒度上的组合。
//
// 所有类型都是值语义的纯计算对象：不加锁、不记录日志、不返回错误。
// 并发场景下应由调用方为每个 worker 准备私有实例，最后通过 Merge 归约。
package stats

import (
	"math"

	"srcstats/internal/model"
)

// Accumulator 累加一串非负整数观测值的 count/total/min/max。
// 零值即为空累加器，可直接使用。
type Accumulator struct {
	count uint64
	total uint64
	min   uint64
	max   uint64
}

// Observe 记录一个观测值，0 也是合法值。
func (a *Accumulator) Observe(value uint64) {
	if a.count == 0 {
		a.min = value
		a.max = value
	} else {
		a.min = min(a.min, value)
		a.max = max(a.max, value)
	}
	a.count++
	a.total += value
}

// Merge 把另一个累加器的全部观测合并进来。
// 结果与按任意顺序逐个 Observe 两边的原始观测值完全一致。
func (a *Accumulator) Merge(other Accumulator) {
	if other.count == 0 {
		return
	}
	if a.count == 0 {
		*a = other
		return
	}
	a.count += other.count
	a.total += other.total
	a.min = min(a.min, other.min)
	a.max = max(a.max, other.max)
}

// Count 返回观测值个数。
func (a Accumulator) Count() uint64 {
	return a.count
}

// Total 返回观测值之和。
func (a Accumulator) Total() uint64 {
	return a.total
}

// Min 返回最小观测值，空累加器返回 0。
func (a Accumulator) Min() uint64 {
	return a.min
}

// Max 返回最大观测值，空累加器返回 0。
func (a Accumulator) Max() uint64 {
	return a.max
}

// IsEmpty 判断是否还没有任何观测值。
func (a Accumulator) IsEmpty() bool {
	return a.count == 0
}

// Average 返回算术平均值；没有观测值时返回 NaN。
func (a Accumulator) Average() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return float64(a.total) / float64(a.count)
}

// Report 生成只读快照，空累加器的平均值为 nil。
func (a Accumulator) Report() model.Accumulator {
	report := model.Accumulator{
		Count: a.count,
		Total: a.total,
		Min:   a.min,
		Max:   a.max,
	}
	if a.count != 0 {
		average := a.Average()
		report.Average = &average
	}
	return report
}
