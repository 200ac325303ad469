package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"lms/config"
)

// UploadFile stores an uploaded file and returns the opaque URL the rest
// of the system keeps. Files go to Cloudinary when configured, otherwise
// to local disk under the configured upload directory.
func UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.CloudinaryCloud != "" {
		return uploadToCloudinary(file, folder)
	}
	path, err := SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, folder))
	if err != nil {
		return "", err
	}
	return GetFileURL(path), nil
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// uploadToCloudinary pushes the file to Cloudinary's unsigned upload
// endpoint and returns the hosted URL.
func uploadToCloudinary(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	publicID := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(file.Filename))
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", config.AppConfig.CloudinaryCloud)

	var result cloudinaryResponse
	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"upload_preset": config.AppConfig.CloudinaryPreset,
			"public_id":     publicID,
		}).
		SetResult(&result).
		SetError(&result).
		Post(endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() || result.SecureURL == "" {
		log.Printf("Cloudinary upload failed (%d): %s", resp.StatusCode(), result.Error.Message)
		return "", fmt.Errorf("cloudinary upload failed: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + "_" + uuid.NewString()[:8] + ext
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	// Adjust this based on your actual file serving setup
	return "/uploads/" + filepath.Base(filePath)
}
