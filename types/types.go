package types

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere 单个球体：位置（nm）、半径（nm）与当前波长下的复介电常数。
// 一次求解期间不可变。
type Sphere struct {
	Position     r3.Vec     // 球心位置（nm）
	Radius       float64    // 半径（nm，必须为正）
	Permittivity complex128 // 相对复介电常数 ε(λ)
}

// RefractiveIndex 返回球体材料的复折射率 sqrt(ε)
func (s Sphere) RefractiveIndex() complex128 {
	return sqrtC(s.Permittivity)
}

// Target 球体集合：下标即全局方程排序，外加基体折射率。
// 同一次求解内所有球共享基体折射率与波长上下文。
type Target struct {
	Spheres     []Sphere // 球体列表（有序）
	MediumIndex float64  // 基体（环境介质）实折射率
}

// Validate 检查几何与材料参数的合法性
func (t *Target) Validate() error {
	if len(t.Spheres) == 0 {
		return fmt.Errorf("gmm: target has no spheres")
	}
	if t.MediumIndex <= 0 {
		return fmt.Errorf("gmm: medium index must be positive, got %g", t.MediumIndex)
	}
	for i, s := range t.Spheres {
		if s.Radius <= 0 {
			return fmt.Errorf("gmm: sphere %d has non-positive radius %g", i, s.Radius)
		}
		for j := i + 1; j < len(t.Spheres); j++ {
			d := r3.Norm(r3.Sub(s.Position, t.Spheres[j].Position))
			if d < MinSeparation {
				return fmt.Errorf("%w: spheres %d and %d", ErrDegenerateGeometry, i, j)
			}
		}
	}
	return nil
}

// Incidence 入射平面波：三个欧拉角与自由空间波长。
//
//	Alpha - 方位角（rad），传播方向绕 z 轴的转角
//	Beta  - 极角（rad），传播方向与 z 轴的夹角
//	Gamma - 偏振角（rad），电场相对参考偏振方向的转角
type Incidence struct {
	Alpha      float64 // 方位角（rad）
	Beta       float64 // 极角（rad）
	Gamma      float64 // 偏振角（rad）
	Wavelength float64 // 自由空间波长（nm）
}

// Direction 返回实验室坐标系下的传播方向单位向量
func (in Incidence) Direction() r3.Vec {
	sb, cb := math.Sincos(in.Beta)
	sa, ca := math.Sincos(in.Alpha)
	return r3.Vec{X: sb * ca, Y: sb * sa, Z: cb}
}

// Wavenumber 返回基体内波数 k = 2π·n_med/λ（nm⁻¹）
func (in Incidence) Wavenumber(mediumIndex float64) float64 {
	return 2 * math.Pi * mediumIndex / in.Wavelength
}

// InteractionPolicy 相互作用策略：统一作用于一次求解内的全部球对。
//
//	Cutoff      - 截断倍数；0 表示全相互作用，>0 时球对间距超过
//	              Cutoff×平均半径的耦合块置零（近似而非错误路径）
//	QuasiStatic - 准静态（近场、无推迟）平移核开关
type InteractionPolicy struct {
	Cutoff      float64
	QuasiStatic bool
}

// Coupled 判断间距 d 的球对 (ri, rj 为两球半径) 是否保留耦合块
func (p InteractionPolicy) Coupled(d, ri, rj float64) bool {
	if p.Cutoff <= 0 {
		return true
	}
	return d <= p.Cutoff*(ri+rj)/2
}

// SphereCoefficients 单个球的多极系数组（长度均为 Slots(Order)）。
// A/B 为散射场系数（电/磁两族），P/Q 为该球局部坐标下的入射场
// 展开系数，MieA/MieB 为该球的孤立 Mie 响应（按度 n 索引，1..Order）。
type SphereCoefficients struct {
	A, B       []complex128 // 散射场多极系数
	P, Q       []complex128 // 入射场展开系数
	MieA, MieB []complex128 // 孤立球 Mie 系数（下标 n-1）
	Position   r3.Vec       // 波束坐标系下的球心位置（nm）
}

// CoefficientSet 一次 (Target, Incidence, λ) 求解的全部解系数。
// 求解完成后不可变，由截面与远场两个评估器独立消费。
type CoefficientSet struct {
	Order      int                  // 截断阶 n_stop
	Wavenumber float64              // 基体内波数（nm⁻¹）
	Wavelength float64              // 自由空间波长（nm）
	Spheres    []SphereCoefficients // 按球编号排序
}

// CrossSections 截面三元组（nm²）
type CrossSections struct {
	Ext float64 // 消光截面
	Sca float64 // 散射截面
	Abs float64 // 吸收截面
}

// SectionSet 每球截面与总截面
type SectionSet struct {
	PerSphere []CrossSections
	Total     CrossSections
}

// sqrtC 复数主平方根（Im ≥ 0 分支，保证无源介质 k 取衰减方向）
func sqrtC(z complex128) complex128 {
	r := math.Hypot(real(z), imag(z))
	re := math.Sqrt((r + real(z)) / 2)
	im := math.Sqrt((r - real(z)) / 2)
	if imag(z) < 0 {
		im = -im
	}
	w := complex(re, im)
	if imag(w) < 0 {
		w = -w
	}
	return w
}
