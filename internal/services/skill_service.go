package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	mongorepo "github.com/yoockh/mora/internal/repositories/mongo"
	"github.com/yoockh/mora/internal/utils"
)

type SkillService interface {
	// Detect returns the known skill keywords mentioned in text, in keyword
	// list order, without duplicates.
	Detect(text string) []string
	KeywordCount() int
}

type skillService struct {
	keywords []string
}

func NewSkillService(keywords []string) SkillService {
	seen := make(map[string]struct{}, len(keywords))
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		lk := strings.ToLower(k)
		if _, ok := seen[lk]; ok {
			continue
		}
		seen[lk] = struct{}{}
		kept = append(kept, k)
	}
	return &skillService{keywords: kept}
}

func (s *skillService) KeywordCount() int { return len(s.keywords) }

func (s *skillService) Detect(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}
	padded := " " + strings.ToLower(text) + " "
	for _, k := range s.keywords {
		lk := strings.ToLower(k)
		// short names like "C", "R" or "Go" only count as whole words
		if utf8.RuneCountInString(k) < 3 {
			if strings.Contains(padded, " "+lk+" ") {
				found = append(found, k)
			}
			continue
		}
		if strings.Contains(padded, lk) {
			found = append(found, k)
		}
	}
	return found
}

func LoadKeywordsFromRepo(ctx context.Context, repo mongorepo.KeywordRepository) ([]string, error) {
	const op = "SkillService.LoadKeywordsFromRepo"

	docs, err := repo.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skill keywords", err)
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Keyword)
	}
	return out, nil
}

// LoadKeywordsCSV reads the "keyword" column of a CSV file with a header row.
func LoadKeywordsCSV(path string) ([]string, error) {
	const op = "SkillService.LoadKeywordsCSV"

	f, err := os.Open(path)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to open keyword file", err)
	}
	defer f.Close()

	kw, err := readKeywordCSV(f)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "malformed keyword file", err)
	}
	return kw, nil
}

func readKeywordCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "keyword") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.New("missing keyword column")
	}

	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(rec) {
			continue
		}
		if k := strings.TrimSpace(rec[col]); k != "" {
			out = append(out, k)
		}
	}
	return out, nil
}
