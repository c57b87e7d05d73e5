// Package storage adaptador local del colaborador de imágenes. Valida formato
// y tamaño, guarda los bytes y devuelve la referencia; el redimensionado queda
// fuera del alcance del núcleo.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jcordero/bodega-api/internal/application/ports"
	"github.com/jcordero/bodega-api/internal/domain"
)

var _ ports.ImageStore = (*LocalImageStore)(nil)

const maxImageBytes = 5 * 1024 * 1024 // 5 MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// LocalImageStore guarda imágenes en disco bajo baseDir/products/ con nombre
// aleatorio, y devuelve la ruta relativa como referencia.
type LocalImageStore struct {
	baseDir string
}

// NewLocalImageStore construye el almacén sobre el directorio dado.
func NewLocalImageStore(baseDir string) *LocalImageStore {
	return &LocalImageStore{baseDir: baseDir}
}

// Save valida extensión y tamaño (máximo 5 MB), escribe el archivo y devuelve
// la referencia relativa (products/<uuid>.<ext>).
func (s *LocalImageStore) Save(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", &domain.ValidationError{Field: "image", Message: "formatos permitidos: jpg, png, gif"}
	}
	if len(data) == 0 {
		return "", &domain.ValidationError{Field: "image", Message: "archivo vacío"}
	}
	if len(data) > maxImageBytes {
		return "", &domain.ValidationError{Field: "image", Message: "el tamaño máximo permitido es de 5 MB"}
	}

	dir := filepath.Join(s.baseDir, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return filepath.ToSlash(filepath.Join("products", name)), nil
}
