package mqtt_client

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"voltage_lab/configs"
	"voltage_lab/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Announcer публикует сводку по каждому сгенерированному набору в MQTT.
// Необязательный компонент: создаётся только если задан брокер.
type Announcer struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// DatasetEvent сводка генерации, уходящая в топик
type DatasetEvent struct {
	DatasetID   string    `json:"dataset_id"`
	RowCount    int       `json:"row_count"`
	VoltageLow  float64   `json:"voltage_low"`
	VoltageHigh float64   `json:"voltage_high"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewAnnouncer подключается к брокеру и возвращает анонсер
func NewAnnouncer(cfg configs.MQTTConfig) (*Announcer, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(fmt.Sprintf("%s-%d", cfg.ClientID, time.Now().Unix()))

	if cfg.Username != "" && cfg.Password != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.OnConnect = func(c mqtt.Client) {
		log.Printf("MQTT анонсер подключен к %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Printf("MQTT соединение потеряно: %v", err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT подключение не удалось: %w", token.Error())
	}

	return &Announcer{client: client, topic: cfg.Topic, qos: byte(cfg.QoS)}, nil
}

// AnnounceDataset публикует сводку по набору; ошибки логируются, не роняют сервис
func (a *Announcer) AnnounceDataset(batch *models.SampleBatch, params models.GeneratorParams) {
	event := DatasetEvent{
		DatasetID:   batch.ID.String(),
		RowCount:    len(batch.Points),
		VoltageLow:  params.VoltageLow,
		VoltageHigh: params.VoltageHigh,
		GeneratedAt: batch.GeneratedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Ошибка сериализации события набора: %v", err)
		return
	}

	token := a.client.Publish(a.topic, a.qos, false, payload)
	if !token.WaitTimeout(2 * time.Second) {
		log.Printf("Таймаут публикации в MQTT, топик %s", a.topic)
		return
	}
	if token.Error() != nil {
		log.Printf("Ошибка публикации в MQTT: %v", token.Error())
	}
}

// Close отключает клиента от брокера
func (a *Announcer) Close() {
	a.client.Disconnect(250)
}
