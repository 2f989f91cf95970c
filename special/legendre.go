package special

import (
	"fmt"
	"math"
)

// 完全归一化的连带勒让德函数（含 Condon-Shortley 相位）：
//
//	P̄_n^m(x) = sqrt((2n+1)(n-m)!/(4π(n+m)!)) · P_n^m(x)
//
// 满足 ∫|P̄_n^m|²dΩ 对球谐函数 P̄·e^{imφ} 归一。
// 负 m 通过对称关系 P̄_n^{-m} = (-1)^m·P̄_n^m 取得。

// sinFloor 极点保护下限：|sinθ| 低于该值时将 θ 移离极点
const sinFloor = 1e-10

// LegendreTable 归一化连带勒让德函数值表（固定宗量 x）
type LegendreTable struct {
	nmax int
	p    [][]float64 // p[n][m]，0 ≤ m ≤ n
}

// NewLegendreTable 构建 0..nmax 全部阶与级的函数值表
// 参数:
//
//	nmax - 最高度数
//	x    - 宗量（|x| ≤ 1，通常为 cosθ）
//
// 返回:
//
//	函数值表
//
// 递推:
//
//	P̄_0^0 = 1/√(4π)
//	P̄_m^m = -s·√((2m+1)/(2m))·P̄_{m-1}^{m-1}（s = √(1-x²)）
//	P̄_{m+1}^m = x·√(2m+3)·P̄_m^m
//	P̄_n^m = a_n^m·(x·P̄_{n-1}^m - P̄_{n-2}^m/a_{n-1}^m)，
//	a_n^m = √((4n²-1)/(n²-m²))
func NewLegendreTable(nmax int, x float64) *LegendreTable {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	s := math.Sqrt(1 - x*x)
	t := &LegendreTable{nmax: nmax, p: make([][]float64, nmax+1)}
	for n := 0; n <= nmax; n++ {
		t.p[n] = make([]float64, n+1)
	}
	t.p[0][0] = 1 / math.Sqrt(4*math.Pi)
	// 对角线与次对角线
	for m := 1; m <= nmax; m++ {
		t.p[m][m] = -s * math.Sqrt(float64(2*m+1)/float64(2*m)) * t.p[m-1][m-1]
	}
	for m := 0; m < nmax; m++ {
		t.p[m+1][m] = x * math.Sqrt(float64(2*m+3)) * t.p[m][m]
	}
	// 沿 n 方向三项递推
	for m := 0; m <= nmax; m++ {
		for n := m + 2; n <= nmax; n++ {
			an := math.Sqrt(float64(4*n*n-1) / float64(n*n-m*m))
			an1 := math.Sqrt(float64(4*(n-1)*(n-1)-1) / float64((n-1)*(n-1)-m*m))
			t.p[n][m] = an * (x*t.p[n-1][m] - t.p[n-2][m]/an1)
		}
	}
	return t
}

// Get 取 P̄_n^m 值（m 可为负，自动应用对称关系）
func (t *LegendreTable) Get(n, m int) float64 {
	if n < 0 || n > t.nmax {
		panic(fmt.Sprintf("legendre table: degree %d out of range [0,%d]", n, t.nmax))
	}
	neg := false
	if m < 0 {
		m = -m
		neg = m%2 == 1
	}
	if m > n {
		return 0
	}
	v := t.p[n][m]
	if neg {
		return -v
	}
	return v
}

// AngularTable 散射角函数表 π_nm(θ)、τ_nm(θ)（固定角 θ）
//
//	π_nm = m·P̄_n^m(cosθ)/(sinθ·√(n(n+1)))
//	τ_nm = (dP̄_n^m/dθ)/√(n(n+1))
//
// 负 m 对称关系：π_{n,-m} = -(-1)^m·π_nm，τ_{n,-m} = (-1)^m·τ_nm
type AngularTable struct {
	nmax int
	pi   [][]float64 // pi[n][m]，1 ≤ n，0 ≤ m ≤ n
	tau  [][]float64
}

// NewAngularTable 构建 1..nmax 全部阶与级的角函数表
// 参数:
//
//	nmax  - 最高度数（≥ 1）
//	theta - 极角（rad）；极点处自动微移以取有限极限
//
// 返回:
//
//	角函数表
//
// 导数关系:
//
//	dP̄_n^m/dθ = (1/sinθ)·[n·cosθ·P̄_n^m - √((n²-m²)(2n+1)/(2n-1))·P̄_{n-1}^m]
func NewAngularTable(nmax int, theta float64) *AngularTable {
	// 极点保护：θ 靠近 0 或 π 时微移，π/τ 在极点有有限极限
	if math.Sin(theta) < sinFloor {
		if math.Cos(theta) > 0 {
			theta = sinFloor
		} else {
			theta = math.Pi - sinFloor
		}
	}
	x, s := math.Cos(theta), math.Sin(theta)
	leg := NewLegendreTable(nmax, x)

	t := &AngularTable{
		nmax: nmax,
		pi:   make([][]float64, nmax+1),
		tau:  make([][]float64, nmax+1),
	}
	for n := 1; n <= nmax; n++ {
		t.pi[n] = make([]float64, n+1)
		t.tau[n] = make([]float64, n+1)
		norm := 1 / math.Sqrt(float64(n*(n+1)))
		for m := 0; m <= n; m++ {
			pnm := leg.Get(n, m)
			var pn1m float64
			if m <= n-1 {
				pn1m = leg.Get(n-1, m)
			}
			t.pi[n][m] = norm * float64(m) * pnm / s
			dtheta := (float64(n)*x*pnm - math.Sqrt(float64((n*n-m*m)*(2*n+1))/float64(2*n-1))*pn1m) / s
			t.tau[n][m] = norm * dtheta
		}
	}
	return t
}

// Pi 取 π_nm 值（m 可为负）
func (t *AngularTable) Pi(n, m int) float64 {
	if n < 1 || n > t.nmax {
		panic(fmt.Sprintf("angular table: degree %d out of range [1,%d]", n, t.nmax))
	}
	if m < 0 {
		v := t.Pi(n, -m)
		if (-m)%2 == 1 {
			return v
		}
		return -v
	}
	if m > n {
		return 0
	}
	return t.pi[n][m]
}

// Tau 取 τ_nm 值（m 可为负）
func (t *AngularTable) Tau(n, m int) float64 {
	if n < 1 || n > t.nmax {
		panic(fmt.Sprintf("angular table: degree %d out of range [1,%d]", n, t.nmax))
	}
	if m < 0 {
		v := t.Tau(n, -m)
		if (-m)%2 == 1 {
			return -v
		}
		return v
	}
	if m > n {
		return 0
	}
	return t.tau[n][m]
}
