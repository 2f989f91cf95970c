package material

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

// TestTableInterpolation 函数验证表格节点命中与线性内插。
func TestTableInterpolation(t *testing.T) {
	tab, err := NewTable([]float64{400, 500, 600}, []float64{1.0, 2.0, 3.0}, []float64{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	// 节点命中
	eps, err := tab.Permittivity(500)
	if err != nil {
		t.Fatalf("Permittivity(500) failed: %v", err)
	}
	want := complex(2.0, 0.2) * complex(2.0, 0.2)
	if cmplx.Abs(eps-want) > 1e-14 {
		t.Errorf("eps(500) = %v, expected %v", eps, want)
	}
	// 中点内插
	eps, err = tab.Permittivity(450)
	if err != nil {
		t.Fatalf("Permittivity(450) failed: %v", err)
	}
	want = complex(1.5, 0.15) * complex(1.5, 0.15)
	if cmplx.Abs(eps-want) > 1e-14 {
		t.Errorf("eps(450) = %v, expected %v", eps, want)
	}
	// 端点
	if _, err := tab.Permittivity(400); err != nil {
		t.Errorf("Permittivity(400) at boundary failed: %v", err)
	}
}

// TestTableOutOfRange 函数验证范围外查询返回硬错误而非外推。
func TestTableOutOfRange(t *testing.T) {
	tab, err := NewTable([]float64{400, 600}, []float64{1, 1}, []float64{0, 0})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if _, err := tab.Permittivity(399.9); !errors.Is(err, ErrWavelengthOutOfRange) {
		t.Errorf("below range should give ErrWavelengthOutOfRange, got %v", err)
	}
	if _, err := tab.Permittivity(601); !errors.Is(err, ErrWavelengthOutOfRange) {
		t.Errorf("above range should give ErrWavelengthOutOfRange, got %v", err)
	}
}

// TestTableValidation 函数验证非法表格构造被拒绝。
func TestTableValidation(t *testing.T) {
	if _, err := NewTable([]float64{500}, []float64{1}, []float64{0}); err == nil {
		t.Errorf("single node table should have failed")
	}
	if _, err := NewTable([]float64{500, 400}, []float64{1, 1}, []float64{0, 0}); err == nil {
		t.Errorf("decreasing wavelengths should have failed")
	}
	if _, err := NewTable([]float64{400, 500}, []float64{1}, []float64{0, 0}); err == nil {
		t.Errorf("mismatched column lengths should have failed")
	}
}

// TestLibraryLookup 函数验证注册表查询与未知材料错误。
func TestLibraryLookup(t *testing.T) {
	lib := Default()
	eps, err := lib.Permittivity("gold", 550)
	if err != nil {
		t.Fatalf("gold lookup failed: %v", err)
	}
	// 可见光区的金：Re(ε) < 0（等离激元条件）
	if real(eps) >= 0 {
		t.Errorf("gold at 550nm: Re(eps) = %g, expected negative", real(eps))
	}
	if imag(eps) <= 0 {
		t.Errorf("gold at 550nm: Im(eps) = %g, expected positive (lossy)", imag(eps))
	}
	if _, err := lib.Permittivity("unobtainium", 550); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("unknown material should give ErrMaterialNotFound, got %v", err)
	}
}

// TestDrudeLorentz 函数验证德鲁德模型的基本物理特征。
func TestDrudeLorentz(t *testing.T) {
	// 近红外处德鲁德金与实测表定性一致：强负实部、正虚部
	eps, err := goldDrude.Permittivity(800)
	if err != nil {
		t.Fatalf("Permittivity failed: %v", err)
	}
	if real(eps) >= -10 {
		t.Errorf("Drude gold at 800nm: Re(eps) = %g, expected strongly negative", real(eps))
	}
	if imag(eps) <= 0 {
		t.Errorf("Drude gold at 800nm: Im(eps) = %g, expected positive", imag(eps))
	}
	// 与表格值的数量级一致性
	lib := Default()
	tabEps, err := lib.Permittivity("gold", 800)
	if err != nil {
		t.Fatalf("table lookup failed: %v", err)
	}
	if math.Abs(real(eps)-real(tabEps)) > 0.5*math.Abs(real(tabEps)) {
		t.Errorf("Drude Re(eps) = %g far from tabulated %g at 800nm", real(eps), real(tabEps))
	}
	if _, err := goldDrude.Permittivity(-5); err == nil {
		t.Errorf("negative wavelength should have failed")
	}
}

// TestConstantModel 函数验证常数折射率模型。
func TestConstantModel(t *testing.T) {
	m := Constant(complex(1.5, 0))
	eps, err := m.Permittivity(123)
	if err != nil {
		t.Fatalf("Permittivity failed: %v", err)
	}
	if cmplx.Abs(eps-2.25) > 1e-15 {
		t.Errorf("eps = %v, expected 2.25", eps)
	}
}
