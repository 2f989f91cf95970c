// Package mie 计算单个均匀球的洛伦兹-米氏散射系数。
package mie

import (
	"fmt"
	"math"
	"math/cmplx"

	"gmm/special"
	"gmm/types"
)

// Coefficients 计算米氏系数 a_n、b_n（n = 1..order）
// 参数:
//
//	order - 截断阶（≥ 1）
//	x     - 尺寸参数 k·radius（基体内波数，必须为正）
//	m     - 相对复折射率（球折射率/基体折射率）
//
// 返回:
//
//	a, b - 长度 order 的切片（下标 n-1），错误信息
//
// 算法:
//
//	对数导数 D_n(mx) 向下递推 + 黎卡提-贝塞尔函数 ψ_n、ξ_n：
//	  a_n = ((D_n/m + n/x)ψ_n - ψ_{n-1}) / ((D_n/m + n/x)ξ_n - ξ_{n-1})
//	  b_n = ((m·D_n + n/x)ψ_n - ψ_{n-1}) / ((m·D_n + n/x)ξ_n - ξ_{n-1})
//	递推发散或结果非有限时返回 types.ErrNumericalInstability。
func Coefficients(order int, x float64, m complex128) (a, b []complex128, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("mie: order must be at least 1, got %d", order)
	}
	if x <= 0 {
		return nil, nil, fmt.Errorf("mie: size parameter must be positive, got %g", x)
	}

	d, err := special.LogDerivative(order, m*complex(x, 0))
	if err != nil {
		return nil, nil, err
	}
	j, err := special.SphericalJ(order, x)
	if err != nil {
		return nil, nil, err
	}
	h, err := special.SphericalH1(order, x)
	if err != nil {
		return nil, nil, err
	}

	a = make([]complex128, order)
	b = make([]complex128, order)
	cx := complex(x, 0)
	for n := 1; n <= order; n++ {
		psi := cx * complex(j[n], 0)    // ψ_n = x·j_n(x)
		psi1 := cx * complex(j[n-1], 0) // ψ_{n-1}
		xi := cx * h[n]                 // ξ_n = x·h_n(x)
		xi1 := cx * h[n-1]
		nx := complex(float64(n)/x, 0)

		fa := d[n]/m + nx
		fb := m*d[n] + nx
		a[n-1] = (fa*psi - psi1) / (fa*xi - xi1)
		b[n-1] = (fb*psi - psi1) / (fb*xi - xi1)

		if cmplx.IsNaN(a[n-1]) || cmplx.IsInf(a[n-1]) || cmplx.IsNaN(b[n-1]) || cmplx.IsInf(b[n-1]) {
			return nil, nil, fmt.Errorf("%w: mie coefficient at n=%d x=%g m=%v", types.ErrNumericalInstability, n, x, m)
		}
	}
	return a, b, nil
}

// StopOrder 返回尺寸参数 x 的推荐截断阶（Wiscombe 判据）
func StopOrder(x float64) int {
	n := int(math.Ceil(x + 4*math.Cbrt(x) + 2))
	if n < 3 {
		n = 3
	}
	return n
}

// Efficiencies 由米氏系数计算消光/散射效率因子 Qext、Qsca
// 参数:
//
//	x    - 尺寸参数
//	a, b - 米氏系数（下标 n-1）
//
// 返回:
//
//	Qext = (2/x²)·Σ(2n+1)·Re(a_n+b_n)
//	Qsca = (2/x²)·Σ(2n+1)·(|a_n|²+|b_n|²)
func Efficiencies(x float64, a, b []complex128) (qext, qsca float64) {
	for i := range a {
		n := float64(i + 1)
		w := 2*n + 1
		qext += w * real(a[i]+b[i])
		qsca += w * (real(a[i])*real(a[i]) + imag(a[i])*imag(a[i]) +
			real(b[i])*real(b[i]) + imag(b[i])*imag(b[i]))
	}
	qext *= 2 / (x * x)
	qsca *= 2 / (x * x)
	return qext, qsca
}
