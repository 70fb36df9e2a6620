package infra

// nginxConf is served by the plugin container. The console fetches the plugin
// manifest from the Service base path, so "/" aliases plugin-manifest.json.
const nginxConf = `
error_log /dev/stdout info;
events {}
http {
  access_log /dev/stdout;
  include /etc/nginx/mime.types;
  default_type application/octet-stream;
  server {
    listen 9443 ssl;
    ssl_certificate /var/cert/tls.crt;
    ssl_certificate_key /var/cert/tls.key;
    root /usr/share/nginx/html;

    # Serve plugin manifest at / so the console gets a valid manifest when fetching basePath
    location = / {
      add_header Content-Type application/json;
      alias /usr/share/nginx/html/plugin-manifest.json;
    }
    location = /plugin-manifest.json {
      add_header Content-Type application/json;
    }

    location /health {
      return 200 'OK';
      add_header Content-Type text/plain;
    }
  }
}
`
