package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// CatalogResult - статистика чтения каталога.
type CatalogResult struct {
	Valid   int
	Invalid int
}

func (r CatalogResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// ReadCatalogFile - читает каталог меню из файла: JSON-массив или JSONL.
// Невалидные позиции пропускаются и попадают в статистику.
func ReadCatalogFile(ctx context.Context, validator ports.MenuItemValidator, filePath string, format InputFormat) ([]domain.MenuItem, CatalogResult, error) {
	// auto по расширению
	if format == FormatAuto {
		if strings.ToLower(filepath.Ext(filePath)) == ".jsonl" {
			format = FormatJSONL
		} else {
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, CatalogResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		return ReadCatalogJSON(ctx, validator, file)
	case FormatJSONL:
		return ReadCatalogJSONL(ctx, validator, file)
	default:
		return nil, CatalogResult{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// ReadCatalogJSON - каталог как JSON-массив позиций.
func ReadCatalogJSON(ctx context.Context, validator ports.MenuItemValidator, ir io.Reader) ([]domain.MenuItem, CatalogResult, error) {
	var (
		res  CatalogResult
		raws []json.RawMessage
	)
	if err := json.NewDecoder(ir).Decode(&raws); err != nil {
		return nil, res, fmt.Errorf("invalid json: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(raws))
	for _, raw := range raws {
		item, err := DecodeMenuItem(ctx, validator, raw)
		if err != nil {
			res.Invalid++
			continue
		}
		items = append(items, *item)
		res.Valid++
	}
	return items, res, nil
}

// ReadCatalogJSONL - каталог по одной позиции на строку. Пустые строки пропускаются.
func ReadCatalogJSONL(ctx context.Context, validator ports.MenuItemValidator, ir io.Reader) ([]domain.MenuItem, CatalogResult, error) {
	var (
		res   CatalogResult
		items []domain.MenuItem
	)

	scanner := bufio.NewScanner(ir)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		item, err := DecodeMenuItem(ctx, validator, line)
		if err != nil {
			res.Invalid++
			continue
		}
		items = append(items, *item)
		res.Valid++
	}
	if err := scanner.Err(); err != nil {
		return items, res, fmt.Errorf("scan: %w", err)
	}
	return items, res, nil
}

// DecodeMenuItem - разбор и валидация одной позиции.
// Служебные поля сервера (__v, createdAt) игнорируются, хвост после объекта - ошибка.
func DecodeMenuItem(ctx context.Context, validator ports.MenuItemValidator, raw []byte) (*domain.MenuItem, error) {
	var item domain.MenuItem
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&item); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
