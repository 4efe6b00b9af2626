package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
	"github.com/joseph-ayodele/ldg/internal/docai"
	"github.com/joseph-ayodele/ldg/internal/extract"
	"github.com/joseph-ayodele/ldg/internal/ocr"
)

// engineFlags are the extractor settings shared by validate and extract.
type engineFlags struct {
	engine     string
	configPath string
	cloud      common.DocAIConfig
	debugDir   string

	lang       string
	dpi        int
	psm        int
	recognizer string
	normalize  bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.engine, "engine", constants.EngineLocal, "text extractor: local (ghostscript+tesseract) or docai")
	fl.StringVar(&f.configPath, "config", "", "YAML file with Document AI settings")
	fl.StringVar(&f.cloud.ProjectID, "project-id", "", "GCP project ID (env GCP_PROJECT_ID)")
	fl.StringVar(&f.cloud.Location, "location", "", "Document AI location (env GCP_LOCATION)")
	fl.StringVar(&f.cloud.ProcessorID, "processor-id", "", "Document AI processor ID (env DOCAI_PROCESSOR_ID)")
	fl.StringVar(&f.cloud.MIMEType, "mime-type", "", "MIME type sent to Document AI")
	fl.StringVar(&f.debugDir, "debug-dir", "", "dump raw Document AI responses here")
	fl.StringVar(&f.lang, "lang", "", "tesseract language hint (env OCR_LANG)")
	fl.IntVar(&f.dpi, "dpi", 0, "rasterization DPI (env OCR_DPI)")
	fl.IntVar(&f.psm, "psm", 0, "tesseract page segmentation mode (env OCR_PSM)")
	fl.StringVar(&f.recognizer, "recognizer", "", "tesseract or gosseract (env OCR_RECOGNIZER)")
	fl.BoolVar(&f.normalize, "normalize", false, "collapse whitespace noise in OCR text")
}

// buildExtractor returns the configured extractor and a cleanup func.
func (a *app) buildExtractor(ctx context.Context, f engineFlags) (extract.TextExtractor, func(), error) {
	switch f.engine {
	case constants.EngineLocal:
		oc := a.cfg.OCR
		if f.lang != "" {
			oc.Lang = f.lang
		}
		if f.dpi > 0 {
			oc.DPI = f.dpi
		}
		if f.psm > 0 {
			oc.PSM = f.psm
		}
		if f.recognizer != "" {
			oc.Recognizer = f.recognizer
		}
		oc.Normalize = oc.Normalize || f.normalize
		if err := oc.Validate(); err != nil {
			return nil, nil, err
		}

		cfg := ocr.Config{
			Ghostscript: oc.Ghostscript,
			Tesseract:   oc.Tesseract,
			TessdataDir: oc.TessdataDir,
			Lang:        oc.Lang,
			DPI:         oc.DPI,
			PSM:         oc.PSM,
			TempRoot:    oc.TempRoot,
			Normalize:   oc.Normalize,
		}
		var opts []ocr.Option
		if oc.Recognizer == "gosseract" {
			rec, err := ocr.NewGosseractRecognizer(cfg)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, ocr.WithRecognizer(rec))
		}
		return extract.NewOCRAdapter(ocr.NewExtractor(cfg, a.logger, opts...)), func() {}, nil

	case constants.EngineDocAI:
		dc := a.cfg.DocAI
		if f.configPath != "" {
			fromFile, err := common.LoadDocAIYAML(f.configPath)
			if err != nil {
				return nil, nil, err
			}
			dc = dc.Override(fromFile)
		}
		dc = dc.Override(f.cloud)

		cfg := docai.FromCommon(dc)
		cfg.DebugDir = f.debugDir
		e, err := docai.New(ctx, cfg, a.logger)
		if err != nil {
			return nil, nil, err
		}
		return extract.NewDocAIAdapter(e), func() {
			if err := e.Close(); err != nil {
				a.logger.Warn("docai.client.close_failed", "error", err)
			}
		}, nil

	default:
		return nil, nil, common.InvalidArgumentErrorf("unknown engine %q (want %s or %s)", f.engine, constants.EngineLocal, constants.EngineDocAI)
	}
}
