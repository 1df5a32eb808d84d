package catalog

import "strings"

// BrandOther is the brand of products whose name matches no known brand.
const BrandOther = "Other"

// brandVocabulary is matched in order; the first brand found in a product name wins.
var brandVocabulary = []string{
	"ASUS", "ACER", "LENOVO", "HP", "DELL", "MSI", "APPLE", "SAMSUNG", "MICROSOFT",
	"RAZER", "GIGABYTE", "LG", "HUAWEI", "XIAOMI", "AXIOO", "INFINIX", "ADVAN",
}

// Brands returns the brand vocabulary in match order.
func Brands() []string {
	return append([]string(nil), brandVocabulary...)
}

// DetectBrand returns the first vocabulary brand contained in name (case-insensitive),
// or BrandOther.
func DetectBrand(name string) string {
	upper := strings.ToUpper(name)
	for _, b := range brandVocabulary {
		if strings.Contains(upper, b) {
			return b
		}
	}
	return BrandOther
}
