package services

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	// Декодеры для проверки, что загружен настоящий растровый файл
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"yatube/config"

	"github.com/google/uuid"
)

// MediaRoot возвращает каталог для загруженных картинок
func MediaRoot() string {
	if config.AppConfig != nil && config.AppConfig.Media.Root != "" {
		return config.AppConfig.Media.Root
	}
	return filepath.Join("media", "posts")
}

// SaveImage проверяет, что загруженный файл декодируется как картинка,
// и сохраняет его под уникальным именем. Возвращает путь относительно
// медиа-каталога.
func SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &ValidationError{Field: "image", Message: "file is not a valid image"}
	}

	root := MediaRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), format)
	if err := os.WriteFile(filepath.Join(root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return name, nil
}
