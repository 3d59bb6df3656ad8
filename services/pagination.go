package services

// POSTS_PER_PAGE - фиксированный размер страницы для всех списков
const POSTS_PER_PAGE = 10

// Page - метаданные пагинации для отображаемого списка
type Page struct {
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Paginate вычисляет страницу для запрошенного номера.
// Номер меньше 1 трактуется как первая страница, номер за последней
// страницей прижимается к последней. Пустой список дает одну пустую страницу.
func Paginate(totalCount int64, number int) Page {
	totalPages := int((totalCount + POSTS_PER_PAGE - 1) / POSTS_PER_PAGE)
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:      number,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}

// Offset возвращает смещение страницы для запроса в БД
func (p Page) Offset() int {
	return (p.Number - 1) * POSTS_PER_PAGE
}
