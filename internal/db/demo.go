package db

import (
	"time"

	"gorm.io/gorm"
)

// 演示数据生成器，用于本地开发时填充轮播图与文章。

type demoPost struct {
	title    string
	slug     string
	excerpt  string
	content  string
	imageURL string
	draft    bool
}

var demoPosts = []demoPost{
	{
		title:    "Probióticos: qué son y cómo elegirlos",
		slug:     "probioticos-que-son-y-como-elegirlos",
		excerpt:  "Una guía práctica para entender las cepas probióticas y su respaldo científico.",
		content:  "## ¿Qué es un probiótico?\n\nMicroorganismos vivos que, administrados en cantidades adecuadas, aportan un beneficio a la salud.\n\n- Revisa la cepa\n- Revisa la dosis (UFC)\n- Revisa la evidencia",
		imageURL: "https://images.unsplash.com/photo-1505576399279-565b52d4ac71?auto=format&fit=crop&w=1600&q=80",
	},
	{
		title:    "Control de calidad en suplementos nutricionales",
		slug:     "control-de-calidad-en-suplementos-nutricionales",
		excerpt:  "Así verificamos pureza, potencia y estabilidad en cada lote.",
		content:  "Cada lote pasa por análisis microbiológico, de metales pesados y de estabilidad.\n\n| Prueba | Frecuencia |\n| --- | --- |\n| Microbiología | Cada lote |\n| Estabilidad | Trimestral |",
		imageURL: "https://images.unsplash.com/photo-1576086213369-97a306d36557?auto=format&fit=crop&w=1600&q=80",
	},
	{
		title:    "Nutrición personalizada y biomarcadores",
		slug:     "nutricion-personalizada-y-biomarcadores",
		excerpt:  "Borrador: cómo los biomarcadores orientan la formulación.",
		content:  "Pendiente de revisión por el equipo científico.",
		imageURL: "https://images.unsplash.com/photo-1490645935967-10de6ba17061?auto=format&fit=crop&w=1600&q=80",
		draft:    true,
	},
}

// DemoSliders 返回演示轮播图，最后一张为停用状态。
func DemoSliders() []Slider {
	return []Slider{
		{
			Title:       "Innovación en biotecnología nutricional",
			Subtitle:    "Ciencia aplicada a tu bienestar",
			Description: "Formulaciones respaldadas por investigación.",
			ImageURL:    "https://images.unsplash.com/photo-1532187863486-abf9dbad1b69?auto=format&fit=crop&w=1920&q=80",
			ButtonText:  "Conócenos",
			ButtonLink:  "/nosotros",
			SortOrder:   1,
			Active:      true,
		},
		{
			Title:      "Calidad certificada",
			Subtitle:   "Procesos bajo estándares GMP",
			ImageURL:   "https://images.unsplash.com/photo-1581093588401-fbb62a02f120?auto=format&fit=crop&w=1920&q=80",
			ButtonText: "Ver certificaciones",
			ButtonLink: "/calidad",
			SortOrder:  2,
			Active:     true,
		},
		{
			Title:     "Próximamente: nueva línea",
			ImageURL:  "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?auto=format&fit=crop&w=1920&q=80",
			SortOrder: 3,
			Active:    false,
		},
	}
}

// DemoPosts 返回演示文章，发布时间按 now 依次往前推一天。
func DemoPosts(now time.Time) []BlogPost {
	posts := make([]BlogPost, 0, len(demoPosts))
	for i, item := range demoPosts {
		post := BlogPost{
			Title:    item.title,
			Slug:     item.slug,
			Excerpt:  item.excerpt,
			Content:  item.content,
			ImageURL: item.imageURL,
			Author:   "Equipo BioNutrex",
		}
		if !item.draft {
			publishedAt := now.AddDate(0, 0, -(i + 1))
			post.Published = true
			post.PublishedAt = &publishedAt
		}
		posts = append(posts, post)
	}
	return posts
}

// SeedDemo 写入演示轮播图与文章，按标题或 slug 跳过已存在的记录。
func SeedDemo(gdb *gorm.DB, now time.Time) (int, error) {
	created := 0
	err := gdb.Transaction(func(tx *gorm.DB) error {
		for _, slider := range DemoSliders() {
			slider := slider
			ok, err := createIfMissing(tx, &Slider{}, "title = ?", slider.Title, &slider)
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}
		for _, post := range DemoPosts(now) {
			post := post
			ok, err := createIfMissing(tx, &BlogPost{}, "slug = ?", post.Slug, &post)
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
