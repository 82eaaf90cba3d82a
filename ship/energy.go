package ship

import (
	"math"

	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
)

// Wind regime codes recorded for telemetry.
const (
	windCalm  = 0.0
	windCross = 1.0
	windTail  = 2.0
	windHead  = 3.0
)

// settleEnergy closes the tick's energy ledger: sail thrust and drag over
// the leg just sailed, turbine generation while riding a typhoon, then the
// battery-first, carrier-second draw.
func (s *Ship) settleEnergy(env Env, before geo.Point) {
	cfg := s.cfg
	stepH := float64(env.StepHours)

	lossWh := s.powerConsumption(env, before, s.geneJudge)
	if !s.lossJudge {
		lossWh = 0
	}
	s.LossWh = lossWh

	geneWh := 0.0
	if s.geneJudge {
		geneWh = s.Design.RatedOutputW * stepH
	}
	s.GeneratedWh = geneWh

	epMax := cfg.ElectricPropulsionMaxStorageWh
	geneCarrier := 0.0

	switch {
	case s.lossJudge:
		// Battery first, carrier makes up the deficit at conversion loss.
		draw := lossWh / cfg.TrustEfficiency
		if s.EPStorageWh-draw >= 0 {
			s.EPStorageWh -= draw
			s.SumLossWh += draw
		} else {
			deficit := draw - s.EPStorageWh
			s.EPStorageWh = 0
			fromCarrier := deficit / cfg.CarrierToElectEfficiency
			s.StorageWh -= fromCarrier
			s.SumLossWh += fromCarrier
		}

	case s.geneJudge:
		s.SumLossWh += lossWh
		headroom := epMax - s.EPStorageWh
		switch {
		case geneWh < headroom:
			s.EPStorageWh += geneWh
		case s.EPStorageWh < epMax:
			geneCarrier = (geneWh - headroom) * cfg.ElectToCarrierEfficiency
			s.EPStorageWh = epMax
		default:
			geneCarrier = geneWh * cfg.ElectToCarrierEfficiency
		}
	}

	if s.geneJudge {
		s.TotalGeneHours += stepH
	}
	if s.lossJudge {
		s.TotalLossHours += stepH
	}

	s.SumGeneratedWh += geneWh
	s.SumGeneCarrierWh += geneCarrier
	s.StorageWh += geneCarrier
	if s.StorageWh > cfg.MaxStorageWh {
		s.StorageWh = cfg.MaxStorageWh
	}
}

// powerConsumption totals the tick's propulsion demand in Wh: hull drag and
// generator pillar drag minus whatever the sails contribute, floored at
// zero and divided by the drivetrain efficiency.
func (s *Ship) powerConsumption(env Env, before geo.Point, generating bool) float64 {
	cfg := s.cfg
	stepH := float64(env.StepHours)

	windWorkWh := s.trajectoryEnergy(env, before, generating)
	s.BrakeWindWorkWh = -windWorkWh

	pillarWh := float64(cfg.GeneratorNum) * s.generatorDragPower(generating) * stepH

	if generating {
		s.SpeedKt = s.Design.GeneratingSpeedKt
	}
	hullWh := s.Design.MaxSpeedPowerW * math.Pow(s.SpeedKt/cfg.MaxSpeedKt, 3) * stepH

	trackingWh := hullWh + pillarWh - windWorkWh
	if trackingWh < 0 {
		trackingWh = 0
	}
	return trackingWh / cfg.TrustEfficiency
}

// trajectoryEnergy integrates the sail work over the leg in half-hour
// substeps, using the nearest wind sample and the leg's initial bearing.
func (s *Ship) trajectoryEnergy(env Env, before geo.Point, generating bool) float64 {
	s.sampleWind(env)

	bearing := geo.InitialBearing(before, s.Position())

	// Bearing of the wind vector measured from north, clockwise.
	windAngle := math.Mod(360-(math.Atan2(s.WindV, s.WindU)*180/math.Pi)+90, 360)
	windDir := math.Mod(windAngle-bearing+360, 360)

	substeps := 2 * env.StepHours
	intervalH := 0.5
	total := 0.0
	for i := 0; i < substeps; i++ {
		total += s.sailWork(windDir, intervalH, generating)
	}
	return total
}

func (s *Ship) sampleWind(env Env) {
	u, v := env.Wind.Nearest(s.Lat, s.Lon)
	s.WindU = u
	s.WindV = v
}

// sailWork is the thrust work of the whole sail plan over one substep, Wh.
// The regime splits at the apparent wind angle: beam reaches use the lift
// polar, running uses flat-plate drag, beating is reefed down by sailSteps.
func (s *Ship) sailWork(windDir, intervalH float64, generating bool) float64 {
	cfg := s.cfg
	d := s.Design

	speedMps := geo.KtToMps(s.SpeedKt)
	windSpeed := math.Hypot(s.WindU, s.WindV)
	if generating {
		speedMps = d.GeneratingSpeedMps
		windSpeed = generatingWindSpeedMps
		windDir = generatingWindDirDeg
	}

	q := 0.5 * airDensity * windSpeed * windSpeed * cfg.SailArea

	var thrust float64
	switch {
	case (26 <= windDir && windDir <= 167) || (193 <= windDir && windDir <= 333):
		s.WindState = windCross
		lift := q * crossLiftCoeff
		drag := q * crossDragCoeff
		thrust = mirroredThrust(windDir, lift, drag)
	case windDir <= 26 || windDir >= 333:
		s.WindState = windTail
		// Sails broadside to the wind, spacing losses apply to the drag too.
		drag := q * tailDragCoeff
		thrust = drag * math.Cos(windDir*math.Pi/180) * d.SailPenalty
	default:
		s.WindState = windHead
		lift := q * headLiftCoeff / float64(cfg.SailSteps)
		drag := q * headDragCoeff / float64(cfg.SailSteps)
		thrust = mirroredThrust(windDir, lift, drag)
	}
	if windSpeed == 0 {
		s.WindState = windCalm
	}

	return thrust * d.SailPenalty * speedMps * intervalH * float64(d.SailNum)
}

// mirroredThrust projects lift and drag onto the course. The sails sweep
// only 0..180 degrees either side, so angles past 180 are mirrored.
func mirroredThrust(windDir, lift, drag float64) float64 {
	if windDir > 180 {
		windDir = 360 - windDir
	}
	rad := windDir * math.Pi / 180
	return lift*math.Sin(rad) + drag*math.Cos(rad)
}

// generatorDragPower is the drag power of one generator in W. Underway the
// turbine is feathered and only the streamlined pillar drags; under a
// typhoon the whole rotor disc works against the generating speed.
func (s *Ship) generatorDragPower(generating bool) float64 {
	cfg := s.cfg

	if generating {
		discArea := cfg.GeneratorTurbineRadius * cfg.GeneratorTurbineRadius * math.Pi
		v := s.Design.GeneratingSpeedMps
		return 0.5 * seaDensity * v * v * discArea * cfg.GeneratorDragCoefficient * v
	}

	v := geo.KtToMps(s.SpeedKt)
	if v == 0 {
		return 0
	}
	re := v * cfg.GeneratorPillarChord / kinematicViscosity
	cf := 0.455 / math.Pow(math.Log10(re), 2.58)
	ct := cfg.GeneratorPillarChord / cfg.GeneratorPillarMaxThickness
	tc := cfg.GeneratorPillarMaxThickness / cfg.GeneratorPillarChord
	cd := 2 * (ct + 2 + 60 + tc*tc*tc) * cf
	drag := 0.5 * cd * seaDensity * v * v * cfg.GeneratorPillarMaxThickness *
		cfg.GeneratorPillarWidth
	return drag * v
}
