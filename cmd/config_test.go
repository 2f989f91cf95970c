package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseConfigDoesNotMutateDefaults 函数验证解析配置不污染包级默认值。
func TestParseConfigDoesNotMutateDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	body := "MediumIndex = 1.0\nWavelengthStep = 25.0\nOrder = 4\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	before := *DefaultConf
	conf, err := ParseConfig(path)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if conf.MediumIndex != 1.0 || conf.WavelengthStep != 25.0 || conf.Order != 4 {
		t.Errorf("overrides not applied: %+v", conf)
	}
	// 未覆盖字段保留默认值
	if conf.WavelengthMin != before.WavelengthMin || conf.SpectrumCSV != before.SpectrumCSV {
		t.Errorf("defaults not carried into parsed config: %+v", conf)
	}
	if DefaultConf.MediumIndex != before.MediumIndex ||
		DefaultConf.WavelengthStep != before.WavelengthStep ||
		DefaultConf.Order != before.Order {
		t.Errorf("ParseConfig mutated DefaultConf: %+v", DefaultConf)
	}
}

// TestConfigWavelengths 函数验证波长范围展开与校验。
func TestConfigWavelengths(t *testing.T) {
	c := &Config{WavelengthMin: 400, WavelengthMax: 500, WavelengthStep: 50}
	wls, err := c.Wavelengths()
	if err != nil {
		t.Fatalf("Wavelengths failed: %v", err)
	}
	if len(wls) != 3 || wls[0] != 400 || wls[2] != 500 {
		t.Errorf("wavelengths = %v, expected [400 450 500]", wls)
	}
	bad := &Config{WavelengthMin: 500, WavelengthMax: 400, WavelengthStep: 10}
	if _, err := bad.Wavelengths(); err == nil {
		t.Errorf("decreasing range should have failed")
	}
}
