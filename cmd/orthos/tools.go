package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"Orthos/internal/calc/fatigue"
	"Orthos/internal/calc/hole"
	"Orthos/internal/calc/micromech"
	"Orthos/internal/config"
	"Orthos/internal/diagram"
)

func newMicromechCmd() *cobra.Command {
	var (
		in      micromech.Input
		xi      float64
		scan    bool
		pngFile string
	)
	cmd := &cobra.Command{
		Use:   "micromech",
		Short: "ply moduli from fibre and matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("xi") {
				in.Xi = &xi
			}
			res, err := micromech.Calculate(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "Micromechanics")
			field(out, "E1 (rule of mixtures)", "%.4g GPa", res.E1/1e9)
			field(out, "E2 (Halpin-Tsai)", "%.4g GPa", res.E2/1e9)
			field(out, "E2 (inverse RoM)", "%.4g GPa", res.E2Inverse/1e9)
			if res.G12 > 0 {
				field(out, "G12 (Halpin-Tsai)", "%.4g GPa", res.G12/1e9)
			}
			if res.Nu12 > 0 {
				field(out, "nu12", "%.3f", res.Nu12)
			}

			if !scan && pngFile == "" {
				return nil
			}
			sr, err := micromech.Scan(micromech.ScanInput{Ef: in.Ef, Em: in.Em, Xi: in.Xi})
			if err != nil {
				return err
			}
			if scan {
				e1 := make([]float64, len(sr.E1))
				e2 := make([]float64, len(sr.E2))
				for i := range sr.Vf {
					e1[i], e2[i] = sr.E1[i]/1e9, sr.E2[i]/1e9
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, diagram.ASCII("E1 (blue) and E2 (red) in GPa, vf 0 to 0.7", 70, e1, e2))
			}
			if pngFile != "" {
				img, err := micromech.Chart(sr)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngFile, img, 0644); err != nil {
					return err
				}
				field(out, "chart", "%s", pngFile)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Ef, "ef", 230e9, "fibre modulus (Pa)")
	cmd.Flags().Float64Var(&in.Em, "em", 3.5e9, "matrix modulus (Pa)")
	cmd.Flags().Float64Var(&in.Vf, "vf", 0.6, "fibre volume fraction")
	cmd.Flags().Float64Var(&xi, "xi", micromech.DefaultXi, "Halpin-Tsai reinforcement factor")
	cmd.Flags().Float64Var(&in.NuF, "nuf", 0, "fibre Poisson's ratio")
	cmd.Flags().Float64Var(&in.NuM, "num", 0, "matrix Poisson's ratio")
	cmd.Flags().Float64Var(&in.Gf, "gf", 0, "fibre shear modulus (Pa)")
	cmd.Flags().Float64Var(&in.Gm, "gm", 0, "matrix shear modulus (Pa)")
	cmd.Flags().BoolVar(&scan, "scan", false, "plot the moduli against the volume fraction")
	cmd.Flags().StringVar(&pngFile, "png", "", "write the scan as a chart")
	return cmd
}

func newHoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hole",
		Short: "open-hole strength and stress concentration",
	}

	var sin hole.StrengthInput
	strengthCmd := &cobra.Command{
		Use:   "strength",
		Short: "notched strength by the point or average stress criterion",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := hole.Strength(sin)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			header(out, "Open-hole strength ("+res.Criterion+")")
			field(out, "strength ratio", "%.4f", res.Ratio)
			field(out, "notched strength", "%.4g MPa", res.PredictedStrength/1e6)
			return nil
		},
	}
	strengthCmd.Flags().Float64Var(&sin.UnnotchedStrength, "strength", 600e6, "unnotched strength (Pa)")
	strengthCmd.Flags().Float64Var(&sin.Radius, "radius", 0.003, "hole radius (m)")
	strengthCmd.Flags().Float64Var(&sin.D0, "d0", 0.001, "characteristic distance (m)")
	strengthCmd.Flags().StringVar(&sin.Criterion, "criterion", hole.PointStress, "psc or asc")

	var (
		bin  hole.BoundaryInput
		plot bool
	)
	boundaryCmd := &cobra.Command{
		Use:   "boundary",
		Short: "hoop stress around a hole in an orthotropic plate",
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			res, err := hole.Boundary(bin, mats)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			header(out, "Hole boundary stress")
			field(out, "Kt (1 + n)", "%.4f", res.Concentration)
			field(out, "max hoop stress", "%.4g at %.1f deg", res.MaxStress, res.ThetaAtMax)
			if plot {
				fmt.Fprintln(out)
				fmt.Fprintln(out, diagram.ASCII("hoop stress, theta 0 to 360 deg", 72, res.SigmaTheta))
			}
			return nil
		},
	}
	boundaryCmd.Flags().StringVar(&bin.Material, "material", "", "take the moduli from a preset")
	boundaryCmd.Flags().Float64Var(&bin.Ex, "ex", 0, "modulus along the load (Pa)")
	boundaryCmd.Flags().Float64Var(&bin.Ey, "ey", 0, "transverse modulus (Pa)")
	boundaryCmd.Flags().Float64Var(&bin.Gxy, "gxy", 0, "shear modulus (Pa)")
	boundaryCmd.Flags().Float64Var(&bin.NuXY, "nuxy", 0, "Poisson's ratio")
	boundaryCmd.Flags().Float64Var(&bin.Sigma, "sigma", 1, "remote stress")
	boundaryCmd.Flags().BoolVar(&plot, "plot", false, "draw the stress around the hole")

	cmd.AddCommand(strengthCmd, boundaryCmd)
	return cmd
}

func newFatigueCmd() *cobra.Command {
	var (
		curve          fatigue.Curve
		stress, cycles float64
		plot           bool
		pngFile        string
	)
	cmd := &cobra.Command{
		Use:   "fatigue",
		Short: "life and strength from a semi-log S-N line",
		Long:  "sigma = A - B log10(N). Give --stress for the life, --cycles for the fatigue strength.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := fatigue.Input{Curve: curve}
			if cmd.Flags().Changed("stress") {
				in.Stress = &stress
			}
			if cmd.Flags().Changed("cycles") {
				in.Cycles = &cycles
			}
			out := cmd.OutOrStdout()
			header(out, "Fatigue")
			if in.Stress != nil || in.Cycles != nil {
				res, err := fatigue.Calculate(in)
				if err != nil {
					return err
				}
				if res.Cycles != nil {
					field(out, "cycles to failure", "%.4g", *res.Cycles)
				}
				if res.Strength != nil {
					field(out, "fatigue strength", "%.4g MPa", *res.Strength/1e6)
				}
			} else if err := curve.Validate(); err != nil {
				return err
			}

			if plot {
				_, s, err := curve.Points(fatigue.DefaultNMin, fatigue.DefaultNMax, 70)
				if err != nil {
					return err
				}
				for i := range s {
					s[i] /= 1e6
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, diagram.ASCII("stress amplitude (MPa), N from 1e3 to 1e7 (log)", 70, s))
			}
			if pngFile != "" {
				img, err := fatigue.Chart(curve)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngFile, img, 0644); err != nil {
					return err
				}
				field(out, "chart", "%s", pngFile)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&curve.A, "A", 600e6, "stress at one cycle (Pa)")
	cmd.Flags().Float64Var(&curve.B, "B", 50e6, "stress drop per decade of cycles (Pa)")
	cmd.Flags().Float64Var(&stress, "stress", 0, "stress amplitude (Pa)")
	cmd.Flags().Float64Var(&cycles, "cycles", 0, "number of cycles")
	cmd.Flags().BoolVar(&plot, "plot", false, "draw the S-N curve")
	cmd.Flags().StringVar(&pngFile, "png", "", "write the S-N curve as a chart")
	return cmd
}

func newMaterialsCmd() *cobra.Command {
	var (
		asYAML  bool
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "list material presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			if outFile != "" {
				return config.SaveMaterials(outFile, mats)
			}
			if asYAML {
				data, err := yaml.Marshal(map[string]config.Materials{"materials": mats})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tE1 (GPa)\tE2 (GPa)\tG12 (GPa)\tNU12\tPLY (mm)")
			for _, name := range mats.Names() {
				m := mats[name]
				fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\t%.2f\t%.3f\n",
					name, m.E1/1e9, m.E2/1e9, m.G12/1e9, m.Nu12, m.PlyThickness*1e3)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the presets as a materials file")
	cmd.Flags().StringVar(&outFile, "out", "", "write the presets to a materials file")
	return cmd
}
