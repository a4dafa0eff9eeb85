package services

import (
	"sort"
	"strings"

	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const minSuggestSimilarity = 0.3

// normalizeKeyword bỏ dấu + lowercase để so khớp không phân biệt dấu.
func normalizeKeyword(input string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
}

// createMatcher tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(maxLen)
}

type suggestion struct {
	Value string
	Score float64
}

// Suggest gợi ý tên/địa điểm khách sạn gần với keyword gõ vào, kể cả gõ
// thiếu dấu hoặc sai vài ký tự.
func (s *HotelService) Suggest(keyword string, limit int) ([]string, error) {
	if limit < 1 || limit > 20 {
		limit = 5
	}
	norm := normalizeKeyword(keyword)
	if norm == "" {
		return []string{}, nil
	}

	var hotels []models.Hotel
	if err := s.db.Select("name", "location").Find(&hotels).Error; err != nil {
		return nil, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn hotel", err)
	}

	// map normalized -> giá trị gốc, loại trùng
	originals := map[string]string{}
	for _, h := range hotels {
		for _, v := range []string{h.Name, h.Location} {
			if v == "" {
				continue
			}
			originals[normalizeKeyword(v)] = v
		}
	}
	if len(originals) == 0 {
		return []string{}, nil
	}

	keywords := make([]string, 0, len(originals))
	for k := range originals {
		keywords = append(keywords, k)
	}

	cm := createMatcher(keywords)
	candidates := cm.ClosestN(norm, limit*3)

	var scored []suggestion
	seen := map[string]bool{}
	for _, cand := range candidates {
		if cand == "" || seen[cand] {
			continue
		}
		seen[cand] = true

		score := calculateSimilarity(norm, cand)
		if strings.Contains(cand, norm) {
			// substring match luôn giữ lại
			score += 0.5
		}
		if score < minSuggestSimilarity {
			continue
		}
		scored = append(scored, suggestion{Value: originals[cand], Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	results := make([]string, 0, limit)
	for _, sg := range scored {
		if len(results) == limit {
			break
		}
		results = append(results, sg.Value)
	}
	return results, nil
}
