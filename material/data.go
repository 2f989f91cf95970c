package material

// 内置贵金属光学常数。表格为约翰逊-克里斯蒂（1972）实测数据的
// 内插样本，覆盖可见与近红外；解析金模型适合表格范围外的
// 快速估算。

// goldTable 金的 (λ/nm, n, k) 样本
var goldWavelengths = []float64{300, 350, 400, 450, 500, 520, 540, 560, 580, 600, 650, 700, 750, 800, 900, 1000}
var goldN = []float64{1.81, 1.75, 1.66, 1.50, 0.97, 0.64, 0.43, 0.31, 0.25, 0.25, 0.17, 0.16, 0.16, 0.17, 0.21, 0.26}
var goldK = []float64{1.92, 1.85, 1.96, 1.88, 1.87, 2.04, 2.46, 2.69, 2.86, 3.07, 3.47, 3.80, 4.15, 4.84, 5.80, 6.80}

// silverTable 银的 (λ/nm, n, k) 样本
var silverWavelengths = []float64{300, 320, 330, 350, 400, 450, 500, 550, 600, 650, 700, 800, 900, 1000}
var silverN = []float64{1.51, 0.86, 0.36, 0.12, 0.05, 0.04, 0.05, 0.06, 0.055, 0.07, 0.14, 0.14, 0.16, 0.21}
var silverK = []float64{0.96, 0.49, 0.58, 1.14, 2.07, 2.55, 2.87, 3.32, 3.92, 4.20, 4.52, 5.28, 6.00, 6.76}

// goldDrude 金的德鲁德模型参数（可见红端以外与实测吻合良好）
var goldDrude = DrudeLorentz{
	EpsInf:  9.84,
	Plasma:  9.01,
	Damping: 0.072,
}

// Default 返回带内置材料的注册表：
//
//	"gold"       - 金（约翰逊-克里斯蒂表）
//	"silver"     - 银（约翰逊-克里斯蒂表）
//	"gold-drude" - 金（德鲁德解析模型）
func Default() *Library {
	l := NewLibrary()
	gold, err := NewTable(goldWavelengths, goldN, goldK)
	if err != nil {
		panic(err) // 内置表由上面的字面量保证合法
	}
	silver, err := NewTable(silverWavelengths, silverN, silverK)
	if err != nil {
		panic(err)
	}
	l.Register("gold", gold)
	l.Register("silver", silver)
	l.Register("gold-drude", goldDrude)
	return l
}
