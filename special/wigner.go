package special

import "math"

// Wigner 3j 符号（整数角动量）。Racah 求和公式配合对数伽马函数
// 实现，避免阶乘溢出；零磁量子数情形另有闭式。

// lnFact 对数阶乘 ln(n!)（n < 0 视为非法组合，由调用方排除）
func lnFact(n int) float64 {
	v, _ := math.Lgamma(float64(n + 1))
	return v
}

// triangleValid 三角不等式 |j1-j2| ≤ j3 ≤ j1+j2
func triangleValid(j1, j2, j3 int) bool {
	return j3 >= j1-j2 && j3 >= j2-j1 && j3 <= j1+j2
}

// Wigner3j 计算 Wigner 3j 符号 (j1 j2 j3; m1 m2 m3)
// 参数:
//
//	j1, j2, j3 - 角动量量子数（非负整数）
//	m1, m2, m3 - 磁量子数
//
// 返回:
//
//	3j 符号值；违反选择定则时返回 0
//
// 算法:
//
//	Racah 求和公式，所有阶乘以 ln Γ 计算后在对数空间组合，
//	求和项带符号逐项累加。
func Wigner3j(j1, j2, j3, m1, m2, m3 int) float64 {
	// 选择定则
	if m1+m2+m3 != 0 {
		return 0
	}
	if j1 < 0 || j2 < 0 || j3 < 0 || !triangleValid(j1, j2, j3) {
		return 0
	}
	if abs(m1) > j1 || abs(m2) > j2 || abs(m3) > j3 {
		return 0
	}

	// 对数空间的前置因子：√(Δ·(j±m)! 乘积)
	logPre := 0.5 * (lnFact(j1+j2-j3) + lnFact(j1-j2+j3) + lnFact(-j1+j2+j3) - lnFact(j1+j2+j3+1) +
		lnFact(j1+m1) + lnFact(j1-m1) + lnFact(j2+m2) + lnFact(j2-m2) + lnFact(j3+m3) + lnFact(j3-m3))

	// Racah 求和范围：所有阶乘参数非负
	tmin := 0
	if v := j2 - j3 - m1; v > tmin {
		tmin = v
	}
	if v := j1 - j3 + m2; v > tmin {
		tmin = v
	}
	tmax := j1 + j2 - j3
	if v := j1 - m1; v < tmax {
		tmax = v
	}
	if v := j2 + m2; v < tmax {
		tmax = v
	}

	sum := 0.0
	for t := tmin; t <= tmax; t++ {
		logDen := lnFact(t) + lnFact(j3-j2+t+m1) + lnFact(j3-j1+t-m2) +
			lnFact(j1+j2-j3-t) + lnFact(j1-t-m1) + lnFact(j2-t+m2)
		term := math.Exp(logPre - logDen)
		if t%2 != 0 {
			term = -term
		}
		sum += term
	}

	if (j1-j2-m3)%2 != 0 {
		sum = -sum
	}
	return sum
}

// Wigner3jZero 计算零磁量子数 3j 符号 (j1 j2 j3; 0 0 0) 的闭式
// 参数:
//
//	j1, j2, j3 - 角动量量子数（非负整数）
//
// 返回:
//
//	3j 符号值；j1+j2+j3 为奇数或违反三角不等式时为 0
//
// 闭式（J = j1+j2+j3，g = J/2）:
//
//	(-1)^g·√(Δ)·g!/((g-j1)!(g-j2)!(g-j3)!)
//	Δ = (j1+j2-j3)!(j1-j2+j3)!(-j1+j2+j3)!/(J+1)!
func Wigner3jZero(j1, j2, j3 int) float64 {
	if j1 < 0 || j2 < 0 || j3 < 0 || !triangleValid(j1, j2, j3) {
		return 0
	}
	J := j1 + j2 + j3
	if J%2 != 0 {
		return 0
	}
	g := J / 2
	logV := 0.5*(lnFact(j1+j2-j3)+lnFact(j1-j2+j3)+lnFact(-j1+j2+j3)-lnFact(J+1)) +
		lnFact(g) - lnFact(g-j1) - lnFact(g-j2) - lnFact(g-j3)
	v := math.Exp(logV)
	if g%2 != 0 {
		v = -v
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
