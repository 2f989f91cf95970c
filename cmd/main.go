package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"gmm"
	"gmm/material"
	"gmm/optics"
	"gmm/types"
)

func main() {
	confPath := flag.String("config", "", "TOML 配置文件路径；留空使用默认金二聚体")
	flag.Parse()

	conf := DefaultConf
	if *confPath != "" {
		var err error
		conf, err = ParseConfig(*confPath)
		if err != nil {
			log.Fatalf("读取配置 %s 失败: %v", *confPath, err)
		}
	}

	target, materials, err := conf.Target()
	if err != nil {
		log.Fatalf("几何配置非法: %v", err)
	}
	wavelengths, err := conf.Wavelengths()
	if err != nil {
		log.Fatalf("扫描配置非法: %v", err)
	}

	points, err := gmm.Sweep(gmm.SweepRequest{
		Target:      target,
		Materials:   materials,
		Library:     material.Default(),
		Incidence:   types.Incidence{Alpha: conf.Alpha, Beta: conf.Beta, Gamma: conf.Gamma},
		Policy:      types.InteractionPolicy{Cutoff: conf.Cutoff, QuasiStatic: conf.QuasiStatic},
		Order:       conf.Order,
		Wavelengths: wavelengths,
		Workers:     conf.Workers,
	})
	if err != nil {
		log.Fatalf("扫描失败: %v", err)
	}
	for _, pt := range points {
		if pt.Err != nil {
			log.Printf("波长 %g nm 求解失败: %v", pt.Wavelength, pt.Err)
		}
	}

	if conf.SpectrumCSV != "" {
		if err := writeSpectrumCSV(conf.SpectrumCSV, points); err != nil {
			log.Fatalf("写出 %s 失败: %v", conf.SpectrumCSV, err)
		}
		fmt.Println("光谱数据:", conf.SpectrumCSV)
	}
	if conf.SpectrumPNG != "" {
		if err := plotSpectrum(conf.SpectrumPNG, points); err != nil {
			log.Fatalf("绘制 %s 失败: %v", conf.SpectrumPNG, err)
		}
		fmt.Println("光谱图:", conf.SpectrumPNG)
	}
	if conf.FarFieldHTML != "" {
		if err := renderFarField(conf, points); err != nil {
			log.Fatalf("绘制 %s 失败: %v", conf.FarFieldHTML, err)
		}
		fmt.Println("远场图样:", conf.FarFieldHTML)
	}
}

// writeSpectrumCSV 写出逐波长总截面表
func writeSpectrumCSV(path string, points []gmm.SweepPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"wavelength_nm", "cext_nm2", "csca_nm2", "cabs_nm2"}); err != nil {
		return err
	}
	for _, pt := range points {
		if pt.Err != nil {
			continue
		}
		s := pt.Result.Sections.Total
		rec := []string{
			fmt.Sprintf("%g", pt.Wavelength),
			fmt.Sprintf("%.8e", s.Ext),
			fmt.Sprintf("%.8e", s.Sca),
			fmt.Sprintf("%.8e", s.Abs),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// plotSpectrum 绘制消光/散射/吸收谱线
func plotSpectrum(path string, points []gmm.SweepPoint) error {
	ext := make(plotter.XYs, 0, len(points))
	sca := make(plotter.XYs, 0, len(points))
	abs := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			continue
		}
		s := pt.Result.Sections.Total
		ext = append(ext, plotter.XY{X: pt.Wavelength, Y: s.Ext})
		sca = append(sca, plotter.XY{X: pt.Wavelength, Y: s.Sca})
		abs = append(abs, plotter.XY{X: pt.Wavelength, Y: s.Abs})
	}
	if len(ext) == 0 {
		return fmt.Errorf("没有可绘制的有效波长点")
	}

	p := plot.New()
	p.Title.Text = "Cross sections"
	p.X.Label.Text = "wavelength (nm)"
	p.Y.Label.Text = "cross section (nm²)"
	if err := plotutil.AddLines(p, "Cext", ext, "Csca", sca, "Cabs", abs); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// renderFarField 在指定波长取样远场图样并渲染为交互式热图
func renderFarField(conf *Config, points []gmm.SweepPoint) error {
	pt := nearestPoint(points, conf.FarFieldWavelength)
	if pt == nil {
		return fmt.Errorf("没有接近 %g nm 的有效波长点", conf.FarFieldWavelength)
	}

	pattern, err := optics.NewPattern(pt.Result.Coefficients, optics.Grid{
		ThetaCount: conf.ThetaCount,
		PhiCount:   conf.PhiCount,
	})
	if err != nil {
		return err
	}

	// 网格取样：x=φ，y=θ（度）
	thetaLabels := make([]string, conf.ThetaCount)
	phiLabels := make([]string, conf.PhiCount)
	data := make([]opts.HeatMapData, 0, conf.ThetaCount*conf.PhiCount)
	maxI := 0.0
	i := 0
	for s := range pattern.Samples() {
		ti, pi := i/conf.PhiCount, i%conf.PhiCount
		thetaLabels[ti] = fmt.Sprintf("%.0f", s.Theta*180/math.Pi)
		phiLabels[pi] = fmt.Sprintf("%.0f", s.Phi*180/math.Pi)
		data = append(data, opts.HeatMapData{Value: [3]interface{}{pi, ti, s.Intensity}})
		if s.Intensity > maxI {
			maxI = s.Intensity
		}
		i++
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("dC/dΩ at %g nm", pt.Wavelength),
			Subtitle: "differential scattering cross section (nm²/sr)",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "φ (deg)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "θ (deg)", Data: thetaLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Min:        0,
			Max:        float32(maxI),
			Calculable: opts.Bool(true),
			Left:       "left",
			Top:        "middle",
			InRange:    &opts.VisualMapInRange{Color: []string{"#0ea5e9", "#22c55e", "#ef4444"}},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	hm.SetXAxis(phiLabels).AddSeries("dC/dΩ", data)

	page := components.NewPage().SetPageTitle("Far-field pattern")
	page.AddCharts(hm)

	f, err := os.Create(conf.FarFieldHTML)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

// nearestPoint 返回离目标波长最近的成功点
func nearestPoint(points []gmm.SweepPoint, wavelength float64) *gmm.SweepPoint {
	var best *gmm.SweepPoint
	bestDist := math.Inf(1)
	for i := range points {
		if points[i].Err != nil {
			continue
		}
		if d := math.Abs(points[i].Wavelength - wavelength); d < bestDist {
			best, bestDist = &points[i], d
		}
	}
	return best
}
