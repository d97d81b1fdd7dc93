// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.14
//

// Demo of the observation estimation engine. Builds a synthetic epoch for
// one receiver, runs the estimator in the selected difference mode, prints
// the per-signal error budget and optionally renders it as an HTML chart.

package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	m "github.com/mkhts/gnssest"
)

type cmdOpt struct {
	mode    m.DiffMode
	opt     *m.EstimatorOpt
	chartFn string
	verbose int
}

func main() {
	args, err := parseArgs()
	if err != nil {
		flag.Usage()
		os.Exit(1)
	}

	switch {
	case args.verbose >= 2:
		log.SetLevel(log.TraceLevel)
	case args.verbose == 1:
		log.SetLevel(log.DebugLevel)
	}

	if err := runApplication(args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func parseArgs() (cmdOpt, error) {
	args := cmdOpt{opt: m.NewEstimatorOpt()}
	flag.Var(&args.mode, "mode", "difference mode (none, single, double)")
	flag.Var(&args.opt.IonosphereModel, "iono", "ionosphere model (none, klobuchar)")
	flag.Var(&args.opt.TroposphereModels.Model, "tropo", "troposphere model (none, saastamoinen)")
	flag.Var(&args.opt.TroposphereModels.ZhdMap, "zhdmap", "hydrostatic mapping function (cosecant, niell)")
	flag.Var(&args.opt.TroposphereModels.ZwdMap, "zwdmap", "wet mapping function (cosecant, niell)")
	flag.Var(&args.opt.GnssMeasurementError.Weight, "weight", "weighting function (unit, cosecant, rtklib, cn0)")
	flag.StringVar(&args.chartFn, "chart", "", "write error budget chart to this HTML file")
	flag.IntVar(&args.verbose, "v", 0, "verbosity (0-2)")
	flag.Parse()
	return args, nil
}

// Elevation, azimuth [deg] and CN0 [dB-Hz] of the synthetic constellation
var demoSky = []struct {
	sat  m.SatType
	freq m.FreqType
	el   float64
	az   float64
	cn0  float64
}{
	{"G05", m.FreqL1, 72, 120, 48},
	{"G12", m.FreqL1, 45, 210, 45},
	{"G23", m.FreqL1, 20, 310, 40},
	{"J01", m.FreqL1, 65, 175, 47},
	{"E11", m.FreqE1, 35, 55, 43},
	{"C08", m.FreqB1, 15, 260, 38},
}

func runApplication(args cmdOpt) error {
	recvLLH := m.NewPosLLH(m.ToRad(35.6812), m.ToRad(139.7671), 50.0)
	recvPos := recvLLH.ToXYZ()
	log.Debugf("receiver antenna at %s", recvLLH)

	set := buildEpoch(recvPos)
	recv := m.NewRecvState(recvPos, []m.SysType{'G', 'J', 'E', 'C'})
	recv.Clk.Bias = m.UncertainVal{Val: 1e-7, Std: 1e-8}
	recv.Clk.Drift = m.UncertainVal{Val: 1e-9, Std: 1e-10}

	est := args.opt.NewEstimator()
	est.CalcEstimates(set, []*m.RecvState{recv}, nil, args.mode)

	printBudget(set)

	if len(args.chartFn) > 0 {
		if err := writeChart(args.chartFn, set); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		log.Infof("chart written to %s", args.chartFn)
	}
	return nil
}

// Build a synthetic single-receiver epoch from the demo sky
func buildEpoch(recvPos m.PosXYZ) *m.ObsSet {
	const RANGE = 22e6 // Receiver-satellite range [m]

	t := m.NewGTime(time.Date(2025, 12, 14, 3, 0, 0, 0, time.UTC))
	set := m.NewObsSet(*t)

	for _, s := range demoSky {
		el := m.ToRad(s.el)
		az := m.ToRad(s.az)
		enu := m.NewPosENU(RANGE*math.Cos(el)*math.Sin(az), RANGE*math.Cos(el)*math.Cos(az), RANGE*math.Sin(el))
		satPos := enu.ToXYZ(recvPos)
		satVel := m.PosXYZ{X: 1200 * math.Sin(az), Y: -1200 * math.Cos(az), Z: 800}

		ro := m.NewRecvObs(recvPos, satPos, satVel, 2e-5, 1e-11)
		ro.CN0 = s.cn0
		ro.Obs[m.Pseudorange] = &m.ObsData{}
		ro.Obs[m.Carrier] = &m.ObsData{}
		ro.Obs[m.Doppler] = &m.ObsData{}

		sig := m.NewSigObs(0, m.SQ(2.0), 1)
		sig.Recv[0] = ro
		set.Sig[m.SatSigId{Sat: s.sat, Freq: s.freq}] = sig
	}
	return set
}

func printBudget(set *m.ObsSet) {
	fmt.Printf("%-8s %6s %6s %14s %10s %10s %10s %12s %12s\n",
		"signal", "elev", "azim", "range[m]", "tropo[m]", "iono[m]", "sagnac[m]", "psr est[m]", "psr var[m2]")
	for _, sigId := range set.SigIds() {
		ro := set.Sig[sigId].Recv[0]
		psr := ro.Obs[m.Pseudorange]
		fmt.Printf("%-8s %6.1f %6.1f %14.3f %10.3f %10.3f %10.3f %12.3f %12.4f\n",
			sigId, m.ToDeg(ro.Elev), m.ToDeg(ro.Azim),
			ro.Terms.Range, ro.Terms.TropoDelay, ro.Terms.IonoDelay, ro.Terms.Sagnac,
			psr.Est, psr.MeasVar)
	}
	n := set.CountObservables()
	fmt.Printf("%d signals, %d/%d/%d psr/carrier/doppler observables\n",
		len(set.Sig), n[m.Pseudorange], n[m.Carrier], n[m.Doppler])
}

// Render the correction terms per signal as a stacked bar chart
func writeChart(fn string, set *m.ObsSet) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "GNSS observation error budget"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "delay [m]"}),
	)

	var labels []string
	var tropo, iono, sagnac []opts.BarData
	for _, sigId := range set.SigIds() {
		ro := set.Sig[sigId].Recv[0]
		labels = append(labels, sigId.String())
		tropo = append(tropo, opts.BarData{Value: ro.Terms.TropoDelay})
		iono = append(iono, opts.BarData{Value: ro.Terms.IonoDelay})
		sagnac = append(sagnac, opts.BarData{Value: math.Abs(ro.Terms.Sagnac)})
	}

	bar.SetXAxis(labels).
		AddSeries("troposphere", tropo).
		AddSeries("ionosphere", iono).
		AddSeries("sagnac", sagnac)

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
