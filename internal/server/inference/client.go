// Package inference содержит адаптер к внешнему inference-серверу
// с предобученной моделью классификации снимков.
//
// Адаптер отвечает за:
//   - декодирование и препроцессинг снимка (resize 128x128, нормализация в [0,1]);
//   - один блокирующий predict-вызов по HTTP (формат TensorFlow Serving);
//   - выбор метки по argmax и расчёт уверенности в процентах.
//
// Модель трактуется как непрозрачная функция: картинка на входе,
// вектор вероятностей двух классов на выходе. Любой сбой на этом пути
// приводится к доменной ошибке ErrInference — записи в БД при этом не происходит.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/utils"
)

// Client — HTTP-клиент predict-эндпоинта модели.
type Client struct {
	endpoint   string
	targetSize int
	http       *http.Client
}

// NewClient создаёт адаптер inference-сервера.
//
// endpoint — полный URL predict-эндпоинта,
// targetSize — сторона квадрата, к которой приводится снимок (обычно 128),
// timeout — таймаут одного predict-вызова.
func NewClient(endpoint string, targetSize int, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		targetSize: targetSize,
		http:       &http.Client{Timeout: timeout},
	}
}

// predictRequest — тело запроса формата TF Serving: батч из одного тензора
// [height][width][3] со значениями в [0,1].
type predictRequest struct {
	Instances [][][][]float64 `json:"instances"`
}

// predictResponse — вектор вероятностей per-instance.
type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

// Classify прогоняет снимок через модель.
//
// Шаги:
//  1. декодирование картинки (jpeg/png/gif);
//  2. resize до targetSize x targetSize;
//  3. нормализация пикселей в [0,1] (деление на 255);
//  4. батч размера 1 и POST на inference-сервер;
//  5. argmax по вектору из двух вероятностей: 0 -> NORMAL, 1 -> PNEUMONIA;
//  6. уверенность = max вероятность * 100, округлённая до 2 знаков.
//
// Любой сбой (битая картинка, транспорт, не-2xx, кривой ответ)
// возвращается как ErrInference.
func (c *Client) Classify(ctx context.Context, r io.Reader) (string, float64, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", 0, fmt.Errorf("%w: decode image: %v", serr.ErrInference, err)
	}

	tensor := c.preprocess(img)

	body, err := json.Marshal(predictRequest{Instances: [][][][]float64{tensor}})
	if err != nil {
		return "", 0, fmt.Errorf("%w: encode request: %v", serr.ErrInference, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("%w: build request: %v", serr.ErrInference, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: model server: %v", serr.ErrInference, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", 0, fmt.Errorf("%w: model server status %s", serr.ErrInference, res.Status)
	}

	var resp predictResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return "", 0, fmt.Errorf("%w: decode response: %v", serr.ErrInference, err)
	}

	// ровно один instance и ровно два класса
	if len(resp.Predictions) != 1 || len(resp.Predictions[0]) != 2 {
		return "", 0, fmt.Errorf("%w: unexpected predictions shape", serr.ErrInference)
	}

	probs := resp.Predictions[0]
	label := models.LabelNormal
	maxp := probs[0]
	if probs[1] > probs[0] {
		label = models.LabelPneumonia
		maxp = probs[1]
	}

	return label, utils.Round2(maxp * 100), nil
}

// preprocess приводит картинку к тензору [targetSize][targetSize][3] в [0,1].
func (c *Client) preprocess(src image.Image) [][][]float64 {
	dst := image.NewRGBA(image.Rect(0, 0, c.targetSize, c.targetSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	tensor := make([][][]float64, c.targetSize)
	for y := 0; y < c.targetSize; y++ {
		row := make([][]float64, c.targetSize)
		for x := 0; x < c.targetSize; x++ {
			i := dst.PixOffset(x, y)
			row[x] = []float64{
				float64(dst.Pix[i]) / 255.0,
				float64(dst.Pix[i+1]) / 255.0,
				float64(dst.Pix[i+2]) / 255.0,
			}
		}
		tensor[y] = row
	}
	return tensor
}
