package special

import (
	"fmt"
	"math"
	"math/cmplx"

	"gmm/types"
)

// 球贝塞尔函数族与对数导数。
// 递推方向按数值稳定性选取：j 向下（Miller算法），y 向上，
// 对数导数 D 向下。所有递推结果做有限性校验，
// 发散时返回 types.ErrNumericalInstability。

// SphericalJ 计算第一类球贝塞尔函数 j_0(x)..j_nmax(x)
// 参数:
//
//	nmax - 最高阶数（必须非负）
//	x    - 实参数（x ≥ 0）
//
// 返回:
//
//	长度 nmax+1 的切片（下标即阶数），错误信息
//
// 算法:
//
//	向下递推 f_{n-1} = (2n+1)/x·f_n - f_{n+1}（起始阶带安全裕量），
//	再用解析的 j_0（或 j_0 接近零点时用 j_1）归一化。
//	小参数时改用级数首项 x^n/(2n+1)!!，避免零除。
func SphericalJ(nmax int, x float64) ([]float64, error) {
	if nmax < 0 {
		return nil, fmt.Errorf("spherical j: negative order %d", nmax)
	}
	if x < 0 {
		return nil, fmt.Errorf("spherical j: negative argument %g", x)
	}
	j := make([]float64, nmax+1)

	// 小参数：级数首两项 j_n ≈ x^n/(2n+1)!!·(1 - x²/(2(2n+3)))
	if x < 1e-5 {
		pow := 1.0
		for n := 0; n <= nmax; n++ {
			j[n] = pow / DoubleFactorial(2*n+1) * (1 - x*x/float64(2*(2*n+3)))
			pow *= x
		}
		return j, nil
	}

	// 向下递推起始阶（高于nmax与x的安全裕量）
	start := nmax + int(x) + types.RecurrenceMargin
	f := make([]float64, start+2)
	f[start+1] = 0
	f[start] = 1e-30
	for n := start; n >= 1; n-- {
		f[n-1] = float64(2*n+1)/x*f[n] - f[n+1]
		// 防止向下递推过程中溢出
		if math.Abs(f[n-1]) > 1e250 {
			for i := n - 1; i <= start+1; i++ {
				f[i] *= 1e-250
			}
		}
	}

	// 归一化：优先用 j_0 = sin(x)/x；x 接近 sin 零点时改用 j_1
	j0 := math.Sin(x) / x
	j1 := math.Sin(x)/(x*x) - math.Cos(x)/x
	var scale float64
	if math.Abs(j0) > math.Abs(j1) {
		scale = j0 / f[0]
	} else {
		scale = j1 / f[1]
	}
	for n := 0; n <= nmax; n++ {
		j[n] = f[n] * scale
		if math.IsNaN(j[n]) || math.IsInf(j[n], 0) {
			return nil, fmt.Errorf("%w: spherical j order %d at x=%g", types.ErrNumericalInstability, n, x)
		}
	}
	return j, nil
}

// SphericalY 计算第二类球贝塞尔函数 y_0(x)..y_nmax(x)
// 参数:
//
//	nmax - 最高阶数（必须非负）
//	x    - 实参数（必须为正，y_n 在原点发散）
//
// 返回:
//
//	长度 nmax+1 的切片（下标即阶数），错误信息
//
// 算法:
//
//	向上递推 y_{n+1} = (2n+1)/x·y_n - y_{n-1}（对 y 族数值稳定）
func SphericalY(nmax int, x float64) ([]float64, error) {
	if nmax < 0 {
		return nil, fmt.Errorf("spherical y: negative order %d", nmax)
	}
	if x <= 0 {
		return nil, fmt.Errorf("spherical y: argument must be positive, got %g", x)
	}
	y := make([]float64, nmax+1)
	y[0] = -math.Cos(x) / x
	if nmax >= 1 {
		y[1] = -math.Cos(x)/(x*x) - math.Sin(x)/x
	}
	for n := 1; n < nmax; n++ {
		y[n+1] = float64(2*n+1)/x*y[n] - y[n-1]
	}
	for n := 0; n <= nmax; n++ {
		if math.IsNaN(y[n]) || math.IsInf(y[n], 0) {
			return nil, fmt.Errorf("%w: spherical y order %d at x=%g", types.ErrNumericalInstability, n, x)
		}
	}
	return y, nil
}

// SphericalH1 计算第一类球汉克尔函数 h_0(x)..h_nmax(x)
// 参数:
//
//	nmax - 最高阶数
//	x    - 实参数（必须为正）
//
// 返回:
//
//	长度 nmax+1 的复数切片 h_n = j_n + i·y_n，错误信息
func SphericalH1(nmax int, x float64) ([]complex128, error) {
	j, err := SphericalJ(nmax, x)
	if err != nil {
		return nil, err
	}
	y, err := SphericalY(nmax, x)
	if err != nil {
		return nil, err
	}
	h := make([]complex128, nmax+1)
	for n := 0; n <= nmax; n++ {
		h[n] = complex(j[n], y[n])
	}
	return h, nil
}

// LogDerivative 计算黎卡提-贝塞尔函数的对数导数 D_n(ρ) = ψ_n'(ρ)/ψ_n(ρ)
// 参数:
//
//	nmax - 最高阶数
//	rho  - 复参数（通常为相对折射率×尺寸参数）
//
// 返回:
//
//	长度 nmax+1 的切片（D[0] 未使用，置零），错误信息
//
// 算法:
//
//	向下递推 D_{n-1} = n/ρ - 1/(D_n + n/ρ)，起始阶
//	N = nmax + |ρ| + 安全裕量，D_N = 0（吸收介质下依然稳定）
func LogDerivative(nmax int, rho complex128) ([]complex128, error) {
	if nmax < 0 {
		return nil, fmt.Errorf("log derivative: negative order %d", nmax)
	}
	if cmplx.Abs(rho) < 1e-12 {
		return nil, fmt.Errorf("%w: log derivative at rho=%v", types.ErrNumericalInstability, rho)
	}
	start := nmax + int(cmplx.Abs(rho)) + types.RecurrenceMargin + 1
	d := make([]complex128, nmax+1)
	cur := complex(0, 0)
	for n := start; n >= 1; n-- {
		nr := complex(float64(n), 0) / rho
		cur = nr - 1/(cur+nr)
		if n-1 <= nmax {
			if n-1 >= 1 {
				d[n-1] = cur
			}
			if cmplx.IsNaN(cur) || cmplx.IsInf(cur) {
				return nil, fmt.Errorf("%w: log derivative order %d at rho=%v", types.ErrNumericalInstability, n-1, rho)
			}
		}
	}
	return d, nil
}

// DoubleFactorial 计算双阶乘 n!!（n ≤ -1 时按惯例返回 1）
func DoubleFactorial(n int) float64 {
	result := 1.0
	for k := n; k >= 2; k -= 2 {
		result *= float64(k)
	}
	return result
}
