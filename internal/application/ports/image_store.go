package ports

// ImageStore colaborador de almacenamiento de imágenes: recibe los bytes
// crudos y devuelve la referencia almacenada. Validar formato/tamaño y
// redimensionar es responsabilidad del adaptador, no del núcleo.
type ImageStore interface {
	Save(filename string, data []byte) (string, error)
}
