// Package optics 从求解后的多极系数导出截面与远场量。
package optics

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"

	"gmm/translate"
	"gmm/types"
)

// Sections 计算每球与总截面
// 参数:
//
//	cs - 求解后的系数集
//
// 返回:
//
//	每球 (Cext, Csca, Cabs) 与总和；能量守恒被违反时返回
//	types.ErrEnergyViolation（指示上游截断阶不足或求解误差）
//
// 公式（k 为基体内波数）:
//
//	Cext_j = -(1/k²)·Σ_{nm} Re[p̃*·a + q̃*·b]   （光学定理）
//	Csca_j =  (1/k²)·Σ_{nm} (|a|² + |b|²)
//	       + (1/k²)·Σ_{l≠j} Σ Re[a*·(Ã·a^l + B̃·b^l) + b*·(B̃·a^l + Ã·b^l)]
//	Cabs_j =  Cext_j - Csca_j
//
// 其中 Ã、B̃ 为正则（贝塞尔 j 径向因子）平移系数：各球出射波在远场
// 相干叠加，交叉干涉项恰为正则平移矩阵元。每球划分把 (j,l) 有序对的
// 干涉项记在球 j 上，故逐球求和即为相干总量；无损目标的总 Cabs 为零。
func Sections(cs *types.CoefficientSet) (*types.SectionSet, error) {
	k2 := cs.Wavenumber * cs.Wavenumber
	ns := len(cs.Spheres)
	set := &types.SectionSet{
		PerSphere: make([]types.CrossSections, ns),
	}

	ext := make([]float64, ns)
	sca := make([]float64, ns)
	for j := range cs.Spheres {
		sc := &cs.Spheres[j]
		for r := range sc.A {
			ext[j] -= real(cmplx.Conj(sc.P[r])*sc.A[r] + cmplx.Conj(sc.Q[r])*sc.B[r])
			sca[j] += real(sc.A[r])*real(sc.A[r]) + imag(sc.A[r])*imag(sc.A[r]) +
				real(sc.B[r])*real(sc.B[r]) + imag(sc.B[r])*imag(sc.B[r])
		}
	}

	// 球对干涉项：每无序对计算一次正则平移，反向由宇称关系取得
	for j := 0; j < ns; j++ {
		for l := j + 1; l < ns; l++ {
			d := r3.Sub(cs.Spheres[l].Position, cs.Spheres[j].Position)
			cJL, err := translate.NewRegular(cs.Order, cs.Wavenumber, d)
			if err != nil {
				return nil, fmt.Errorf("pair (%d,%d): %w", j, l, err)
			}
			sca[j] += crossTerm(&cs.Spheres[j], &cs.Spheres[l], cJL)
			sca[l] += crossTerm(&cs.Spheres[l], &cs.Spheres[j], cJL.Reverse())
		}
	}

	for j := 0; j < ns; j++ {
		e, s := ext[j]/k2, sca[j]/k2
		set.PerSphere[j] = types.CrossSections{Ext: e, Sca: s, Abs: e - s}
		set.Total.Ext += e
		set.Total.Sca += s
		set.Total.Abs += e - s
	}

	if set.Total.Ext < 0 || set.Total.Sca > set.Total.Ext*(1+types.Tolerance) {
		return nil, fmt.Errorf("%w: total Cext = %g, Csca = %g",
			types.ErrEnergyViolation, set.Total.Ext, set.Total.Sca)
	}
	if set.Total.Abs < -types.Tolerance*set.Total.Ext {
		return nil, fmt.Errorf("%w: total Cabs = %g (Cext = %g)",
			types.ErrEnergyViolation, set.Total.Abs, set.Total.Ext)
	}
	return set, nil
}

// crossTerm 计算有序球对 (target, source) 的散射干涉项
// c 为 source → target 的正则平移系数表（行=target 槽位，列=source 槽位）
func crossTerm(target, source *types.SphereCoefficients, c *translate.Coupling) float64 {
	L := len(target.A)
	sum := 0.0
	for row := 0; row < L; row++ {
		at, bt := cmplx.Conj(target.A[row]), cmplx.Conj(target.B[row])
		if at == 0 && bt == 0 {
			continue
		}
		var ta, tb complex128
		for col := 0; col < L; col++ {
			av := c.A[row*L+col]
			bv := c.B[row*L+col]
			ta += av*source.A[col] + bv*source.B[col]
			tb += bv*source.A[col] + av*source.B[col]
		}
		sum += real(at*ta + bt*tb)
	}
	return sum
}
