package db

import (
	"errors"
	"strings"
	"time"

	"github.com/bionutrex/internal/auth"
	"gorm.io/gorm"
)

// EnsureAdmin 存在性检查：若邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
// 返回值表示是否新建了账号。
func EnsureAdmin(gdb *gorm.DB, email, password, name string) (bool, error) {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	var existing Admin
	err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := auth.HashPassword(trimmedPassword)
	if err != nil {
		return false, err
	}

	admin := Admin{Email: trimmedEmail, Name: strings.TrimSpace(name), Password: hashed}
	if err := gdb.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DefaultHomeSections 是首页初始区块内容。
func DefaultHomeSections() []HomeSection {
	return []HomeSection{
		{
			SectionKey: "hero",
			Title:      "Ciencia Avanzada. Pureza Natural.",
			Subtitle:   "Innovación en Biotecnología",
			Content:    "Liderando el futuro de la biotecnología con suplementos naturales de alta potencia y estándares de fabricación de grado farmacéutico.",
			SortOrder:  1,
			Active:     true,
		},
		{
			SectionKey: "quality",
			Title:      "Calidad Superior",
			Subtitle:   "Estándares Farmacéuticos",
			Content:    "Nuestros productos cumplen con los más altos estándares de calidad y pureza en la industria.",
			SortOrder:  2,
			Active:     true,
		},
		{
			SectionKey: "methodology",
			Title:      "Metodología Científica",
			Subtitle:   "Investigación y Desarrollo",
			Content:    "Aplicamos métodos científicos rigurosos en el desarrollo de todos nuestros productos.",
			SortOrder:  3,
			Active:     true,
		},
		{
			SectionKey: "blog",
			Title:      "Blog y Noticias",
			Subtitle:   "Mantente Informado",
			Content:    "Descubre las últimas investigaciones y novedades en biotecnología nutricional.",
			SortOrder:  4,
			Active:     true,
		},
	}
}

const welcomePostContent = `# Bienvenidos a BioNutrex

En BioNutrex, estamos comprometidos con la excelencia en biotecnología nutricional. Nuestro equipo de científicos e investigadores trabaja día a día para desarrollar productos que marquen la diferencia en la salud y bienestar de las personas.

## Nuestra Misión

Proporcionar suplementos naturales de la más alta calidad, respaldados por ciencia sólida y fabricados bajo estándares farmacéuticos.

## Nuestra Visión

Ser líderes mundiales en innovación biotecnológica aplicada a la nutrición, contribuyendo a un mundo más saludable.

¡Gracias por confiar en BioNutrex!
`

// WelcomePost 返回示例博客文章。
func WelcomePost(now time.Time) BlogPost {
	publishedAt := now
	return BlogPost{
		Title:       "Bienvenidos a BioNutrex",
		Slug:        "bienvenidos-bionutrex",
		Excerpt:     "Conoce más sobre nuestra misión y visión en el mundo de la biotecnología nutricional.",
		Content:     welcomePostContent,
		ImageURL:    "/uploads/blog-default.jpg",
		Author:      "Equipo BioNutrex",
		Published:   true,
		PublishedAt: &publishedAt,
	}
}

// SeedContent 写入默认首页区块与欢迎文章，已存在的记录保持不变。
// 返回新建的记录数。
func SeedContent(gdb *gorm.DB, now time.Time) (int, error) {
	created := 0
	err := gdb.Transaction(func(tx *gorm.DB) error {
		for _, section := range DefaultHomeSections() {
			section := section
			ok, err := createIfMissing(tx, &HomeSection{}, "section_key = ?", section.SectionKey, &section)
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}

		post := WelcomePost(now)
		ok, err := createIfMissing(tx, &BlogPost{}, "slug = ?", post.Slug, &post)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func createIfMissing(tx *gorm.DB, model interface{}, query string, key string, record interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, key).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Create(record).Error; err != nil {
		return false, err
	}
	return true, nil
}
