package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Orthos/internal/calc/bending"
	"Orthos/internal/calc/buckling"
	"Orthos/internal/calc/importer"
	"Orthos/internal/calc/report"
	"Orthos/internal/calc/sizing"
	"Orthos/internal/diagram"
)

// stackFlags registers the layup flags shared by the plate commands.
func stackFlags(cmd *cobra.Command, layup *string, sym *bool, material *string) {
	cmd.Flags().StringVar(layup, "layup", "0/90", "ply angles in degrees, bottom first (\"0/45/90\" or \"[0,45,90]\")")
	cmd.Flags().BoolVar(sym, "sym", true, "mirror the layup about the mid-plane")
	cmd.Flags().StringVar(material, "material", "", "material preset (default carbon-epoxy)")
}

func stack(layup string, sym bool, material string) (bending.Stack, error) {
	angles, err := importer.ParseLayup(layup)
	if err != nil {
		return bending.Stack{}, err
	}
	return bending.Stack{Layup: angles, Sym: &sym, Material: material}, nil
}

func newBendingCmd() *cobra.Command {
	var (
		in                bending.Input
		layup, material   string
		sym, plot         bool
		pngFile, pdfFile  string
		xlsxFile, project string
	)
	cmd := &cobra.Command{
		Use:   "bending",
		Short: "deflection of a simply supported plate under uniform pressure",
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			if in.Stack, err = stack(layup, sym, material); err != nil {
				return err
			}
			sol, err := bending.Solve(in, mats)
			if err != nil {
				return err
			}
			lam := sol.Plate.Laminate

			out := cmd.OutOrStdout()
			header(out, "Plate bending")
			field(out, "plate", "%g x %g m", in.Length, in.Width)
			field(out, "material", "%s", lam.Material.Name)
			field(out, "sequence", "%v", lam.Sequence)
			field(out, "thickness", "%.3f mm", lam.Thickness*1e3)
			field(out, "load", "%g Pa", in.Load)
			field(out, "max deflection", "%.6g m (%.4f mm)", sol.Result.MaxDeflection, sol.Result.MaxDeflection*1e3)
			field(out, "center deflection", "%.6g m (%.4f mm)", sol.Result.CenterDeflection, sol.Result.CenterDeflection*1e3)
			warn(out, sol.Result.Warning)

			if plot {
				fmt.Fprintln(out)
				fmt.Fprintln(out, diagram.Profile(sol.Field, 60))
			}
			if pngFile != "" {
				p, err := diagram.DeflectionMap(sol.Field, fmt.Sprintf("Deflection, %v", lam.Sequence))
				if err != nil {
					return err
				}
				if err := diagram.SavePNG(p, pngFile); err != nil {
					return err
				}
				field(out, "map", "%s", pngFile)
			}
			if xlsxFile != "" {
				f, err := importer.Workbook(in, sol)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := f.SaveAs(xlsxFile); err != nil {
					return err
				}
				field(out, "workbook", "%s", xlsxFile)
			}
			if pdfFile != "" {
				f, err := os.Create(pdfFile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.Write(f, report.Input{Input: in, Project: project}, mats); err != nil {
					return err
				}
				field(out, "report", "%s", pdfFile)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Length, "length", 0.5, "plate length a (m)")
	cmd.Flags().Float64Var(&in.Width, "width", 0.5, "plate width b (m)")
	cmd.Flags().Float64Var(&in.Load, "load", 1000, "uniform pressure q0 (Pa)")
	cmd.Flags().StringVar(&in.Method, "method", "navier", "solution method")
	cmd.Flags().IntVar(&in.MMax, "m-max", 0, "exclusive limit on m (default 11)")
	cmd.Flags().IntVar(&in.NMax, "n-max", 0, "exclusive limit on n (default 11)")
	stackFlags(cmd, &layup, &sym, &material)
	cmd.Flags().BoolVar(&plot, "plot", false, "draw the mid-width profile")
	cmd.Flags().StringVar(&pngFile, "png", "", "write a deflection map")
	cmd.Flags().StringVar(&xlsxFile, "xlsx", "", "write the deflection grid as a workbook")
	cmd.Flags().StringVar(&pdfFile, "pdf", "", "write a PDF report")
	cmd.Flags().StringVar(&project, "project", "", "project name for the report")
	return cmd
}

func newBucklingCmd() *cobra.Command {
	var (
		in              buckling.Input
		layup, material string
		sym             bool
	)
	cmd := &cobra.Command{
		Use:   "buckling",
		Short: "critical uniaxial load of a simply supported plate",
		Long: "Critical load N_cr along x. The stiffness comes from --D11..--D66, or\n" +
			"from the laminate when --layup is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("layup") {
				mats, err := loadMaterials()
				if err != nil {
					return err
				}
				s, err := stack(layup, sym, material)
				if err != nil {
					return err
				}
				lam, err := s.Laminate(mats)
				if err != nil {
					return err
				}
				d := lam.Orthotropic()
				in.D11, in.D12, in.D22, in.D66 = d.D11, d.D12, d.D22, d.D66
			}
			res, err := buckling.Calculate(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "Plate buckling")
			field(out, "D11 D12 D22 D66", "%.4g %.4g %.4g %.4g N m", in.D11, in.D12, in.D22, in.D66)
			field(out, "plate", "%g x %g m", in.A, in.B)
			field(out, fmt.Sprintf("N_cr (m=%d, n=%d)", max(in.M, 1), max(in.N, 1)), "%.6g N/m", res.Ncr)
			if res.Governing != nil {
				field(out, "governing mode", "m=%d, n=%d", res.Governing.M, res.Governing.N)
				field(out, "governing N_cr", "%.6g N/m", res.Governing.Ncr)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.D11, "D11", 0, "bending stiffness D11 (N m)")
	cmd.Flags().Float64Var(&in.D12, "D12", 0, "bending stiffness D12 (N m)")
	cmd.Flags().Float64Var(&in.D22, "D22", 0, "bending stiffness D22 (N m)")
	cmd.Flags().Float64Var(&in.D66, "D66", 0, "bending stiffness D66 (N m)")
	cmd.Flags().Float64Var(&in.A, "a", 0.5, "plate length a (m)")
	cmd.Flags().Float64Var(&in.B, "b", 0.5, "plate width b (m)")
	cmd.Flags().IntVar(&in.M, "m", 1, "half-waves along x")
	cmd.Flags().IntVar(&in.N, "n", 1, "half-waves along y")
	cmd.Flags().BoolVar(&in.Scan, "scan", false, "search for the governing mode")
	cmd.Flags().IntVar(&in.ScanM, "scan-m", 0, "highest m in the search (default 10)")
	cmd.Flags().IntVar(&in.ScanN, "scan-n", 0, "highest n in the search (default 10)")
	stackFlags(cmd, &layup, &sym, &material)
	return cmd
}

func newLaminateCmd() *cobra.Command {
	var (
		layup, material string
		sym             bool
	)
	cmd := &cobra.Command{
		Use:   "laminate",
		Short: "bending stiffness of a layup",
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			s, err := stack(layup, sym, material)
			if err != nil {
				return err
			}
			res, err := bending.Describe(s, mats)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "Laminate")
			field(out, "material", "%s", res.Material.Name)
			field(out, "sequence", "%v", res.Sequence)
			field(out, "thickness", "%.3f mm", res.Thickness*1e3)
			field(out, "coupling ratio", "%.4f", res.CouplingRatio)
			fmt.Fprintln(out)
			header(out, "D (N m)")
			if err := printMatrix(out, res.D); err != nil {
				return err
			}
			warn(out, res.Warning)
			return nil
		},
	}
	stackFlags(cmd, &layup, &sym, &material)
	return cmd
}

func newImportCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "import [file.xlsx]",
		Short: "solve every plate listed in a workbook",
		Long:  "Columns: " + fmt.Sprint(importer.Header) + ". The first row is a header.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := importer.ReadRows(f)
			if err != nil {
				return err
			}
			res, err := importer.Import(rows, mats)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROW\tMAX (mm)\tCENTER (mm)\tNOTE")
			for _, item := range res.Results {
				if item.Result == nil {
					fmt.Fprintf(w, "%d\t-\t-\t%s\n", item.Row, item.Error)
					continue
				}
				fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%s\n", item.Row,
					item.Result.MaxDeflection*1e3, item.Result.CenterDeflection*1e3, item.Result.Warning)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d solved, %d failed\n", res.Count, res.Failed)

			if outFile != "" {
				wb, err := importer.ResultsWorkbook(res)
				if err != nil {
					return err
				}
				defer wb.Close()
				return wb.SaveAs(outFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "write the results as a workbook")
	return cmd
}

func newSizingCmd() *cobra.Command {
	var (
		in              sizing.Input
		layup, material string
		sym             bool
	)
	cmd := &cobra.Command{
		Use:   "sizing",
		Short: "fewest repeats of a layup block that meet a deflection limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			mats, err := loadMaterials()
			if err != nil {
				return err
			}
			if in.Stack, err = stack(layup, sym, material); err != nil {
				return err
			}
			res, err := sizing.Size(in, mats)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header(out, "Laminate sizing")
			field(out, "repeats", "%d", res.Repeats)
			field(out, "sequence", "%v", res.Sequence)
			field(out, "thickness", "%.3f mm", res.Thickness*1e3)
			field(out, "max deflection", "%.4f mm", res.MaxDeflection*1e3)
			field(out, "allowable", "%.4f mm", res.Allowable*1e3)
			if !res.OK {
				warn(out, res.Notes)
			}
			warn(out, res.Warning)
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Length, "length", 0.5, "plate length a (m)")
	cmd.Flags().Float64Var(&in.Width, "width", 0.5, "plate width b (m)")
	cmd.Flags().Float64Var(&in.Load, "load", 1000, "uniform pressure q0 (Pa)")
	cmd.Flags().Float64Var(&in.LimitRatio, "limit", sizing.DefaultLimitRatio, "allowable deflection as span/limit")
	cmd.Flags().IntVar(&in.MaxRepeats, "max-repeats", sizing.MaxRepeats, "largest number of repeats to try")
	stackFlags(cmd, &layup, &sym, &material)
	return cmd
}
