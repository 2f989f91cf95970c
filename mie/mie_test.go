package mie

import (
	"math"
	"math/cmplx"
	"testing"
)

// TestCoefficientsDipoleLimit 函数验证小球极限下 a_1 收敛到偶极极化率。
func TestCoefficientsDipoleLimit(t *testing.T) {
	// x → 0 时 a_1 → -(2i/3)·x³·(m²-1)/(m²+2)
	x := 0.01
	m := complex(1.5, 0.02)
	a, b, err := Coefficients(3, x, m)
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	alpha := (m*m - 1) / (m*m + 2)
	want := complex(0, -2.0/3.0) * complex(x*x*x, 0) * alpha
	if cmplx.Abs(a[0]-want)/cmplx.Abs(want) > 1e-3 {
		t.Errorf("a_1 = %v, dipole limit expects %v", a[0], want)
	}
	// 磁偶极 b_1 为高一阶小量
	if cmplx.Abs(b[0]) > cmplx.Abs(a[0])*0.01 {
		t.Errorf("b_1 = %v should be much smaller than a_1 = %v", b[0], a[0])
	}
}

// TestEfficienciesNonAbsorbing 函数验证无吸收球的 Qext = Qsca。
func TestEfficienciesNonAbsorbing(t *testing.T) {
	x := 2.5
	order := StopOrder(x)
	a, b, err := Coefficients(order, x, complex(1.33, 0))
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	qext, qsca := Efficiencies(x, a, b)
	if qext <= 0 || qsca <= 0 {
		t.Fatalf("efficiencies must be positive: qext=%g qsca=%g", qext, qsca)
	}
	if math.Abs(qext-qsca)/qext > 1e-10 {
		t.Errorf("non-absorbing sphere: qext=%g, qsca=%g should be equal", qext, qsca)
	}
}

// TestEfficienciesAbsorbing 函数验证吸收球满足 Qsca < Qext。
func TestEfficienciesAbsorbing(t *testing.T) {
	x := 2.5
	order := StopOrder(x)
	a, b, err := Coefficients(order, x, complex(1.5, 0.5))
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	qext, qsca := Efficiencies(x, a, b)
	if qsca >= qext {
		t.Errorf("absorbing sphere: qsca=%g must be below qext=%g", qsca, qext)
	}
}

// TestCoefficientsPassivity 函数验证无源性约束 Re(a_n) ≥ |a_n|²。
func TestCoefficientsPassivity(t *testing.T) {
	// 等价于 |a_n - 1/2| ≤ 1/2，对任何无源材料成立
	for _, m := range []complex128{1.33, 1.5 + 0.3i, 0.2 + 3i} {
		x := 3.0
		order := StopOrder(x)
		a, b, err := Coefficients(order, x, m)
		if err != nil {
			t.Fatalf("Coefficients(%v) failed: %v", m, err)
		}
		for i := range a {
			if re, sq := real(a[i]), cmplx.Abs(a[i])*cmplx.Abs(a[i]); re < sq-1e-12 {
				t.Errorf("m=%v a_%d=%v violates passivity: Re=%g < |a|²=%g", m, i+1, a[i], re, sq)
			}
			if re, sq := real(b[i]), cmplx.Abs(b[i])*cmplx.Abs(b[i]); re < sq-1e-12 {
				t.Errorf("m=%v b_%d=%v violates passivity: Re=%g < |b|²=%g", m, i+1, b[i], re, sq)
			}
		}
	}
}

// TestCoefficientsDecay 函数验证系数在截断阶附近快速衰减。
func TestCoefficientsDecay(t *testing.T) {
	x := 2.0
	order := StopOrder(x) + 4
	a, _, err := Coefficients(order, x, complex(1.5, 0))
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	if cmplx.Abs(a[order-1]) > 1e-6*cmplx.Abs(a[0]) {
		t.Errorf("a_%d = %v has not decayed relative to a_1 = %v", order, a[order-1], a[0])
	}
}

// TestStopOrder 函数验证 Wiscombe 截断判据的单调性与下限。
func TestStopOrder(t *testing.T) {
	if n := StopOrder(0.01); n < 3 {
		t.Errorf("StopOrder(0.01) = %d, expected at least 3", n)
	}
	if StopOrder(10) <= StopOrder(1) {
		t.Errorf("StopOrder must grow with size parameter")
	}
}

// TestCoefficientsInvalidInput 函数验证非法输入被拒绝。
func TestCoefficientsInvalidInput(t *testing.T) {
	if _, _, err := Coefficients(0, 1, 1.5); err == nil {
		t.Errorf("order 0 should have failed")
	}
	if _, _, err := Coefficients(3, -1, 1.5); err == nil {
		t.Errorf("negative size parameter should have failed")
	}
}
