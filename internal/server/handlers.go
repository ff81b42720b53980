package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-sorter/internal/factory"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/parsererror"

	"github.com/go-chi/chi/v5"
)

// uploadResponse is the JSON reply for a successful upload.
type uploadResponse struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename"`
	Transactions int    `json:"transactions"`
	Deposits     int    `json:"deposits"`
	Withdrawals  int    `json:"withdrawals"`
}

// errorResponse is the JSON reply for any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleUpload runs the whole pipeline for one statement file: parse,
// categorize, render, reply with the generated file name. The uploaded
// file itself is never kept.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close uploaded file")
		}
	}()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	parserType, err := factory.ForFilename(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file type. Allowed: PDF, XLS, XLSX, CSV")
		return
	}

	logger := s.logger.WithFields(
		logging.Field{Key: logging.FieldUploadName, Value: header.Filename},
		logging.Field{Key: logging.FieldParser, Value: string(parserType)})
	logger.Info("Processing uploaded statement")

	p, err := factory.GetParserWithOCR(parserType, s.logger, s.ocrEngine)
	if err != nil {
		logger.WithError(err).Error("Failed to create parser")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transactions, err := p.Parse(file)
	if err != nil {
		var invalidFormat *parsererror.InvalidFormatError
		if errors.As(err, &invalidFormat) {
			logger.WithError(err).Warn("Uploaded file is not a readable statement")
			writeError(w, http.StatusBadRequest, "Could not parse transactions")
			return
		}
		logger.WithError(err).Error("Statement extraction failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(transactions) == 0 {
		writeError(w, http.StatusBadRequest, "No transactions found in file")
		return
	}

	account := models.Account{BankName: models.DefaultBankName}
	if extractor, ok := p.(models.AccountExtractor); ok {
		account = extractor.AccountInfo()
	}

	result := s.processor.Process(r.Context(), transactions)
	if len(result.Transactions) == 0 {
		writeError(w, http.StatusBadRequest, "Could not parse transactions")
		return
	}

	var outputName string
	if r.FormValue("format") == "csv" {
		outputName, err = s.workbook.WriteCSV(result.Transactions)
	} else {
		outputName, err = s.workbook.WriteWorkbook(result.Transactions, account)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to write report")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("Statement processed",
		logging.Field{Key: logging.FieldOutputFile, Value: outputName},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldDeposits, Value: result.Deposits},
		logging.Field{Key: logging.FieldWithdrawals, Value: result.Withdrawals})

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:      true,
		Filename:     outputName,
		Transactions: len(result.Transactions),
		Deposits:     result.Deposits,
		Withdrawals:  result.Withdrawals,
	})
}

// handleDownload streams a previously generated report. Names that try to
// leave the output directory get the same reply as a missing file.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(s.workbook.OutputDir(), name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(name, ".csv") {
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}
